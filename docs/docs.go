// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/trackr/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/users": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a new user",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/users/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Log in with email and password",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/users/refresh": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Exchange a refresh token",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/users/profile": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Current user's profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            },
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update the current user's profile",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/users/search": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Search users by name",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/users/{id}/role": {
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Change a user's global role",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/teams": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Create a team",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            },
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "List the caller's teams",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/teams/{id}": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Get a team",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/teams/{id}/members": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Add a team member",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/teams/{id}/members/{userId}": {
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Change a team member's role",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "userId", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            },
            "delete": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Remove a team member",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/projects": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Create a project",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            },
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "List the caller's projects",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/projects/{id}": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Get a project",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            },
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Update a project",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            },
            "delete": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Delete a project",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/projects/{id}/members": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Add a project member",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/projects/{id}/members/{userId}": {
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Change a project member's role",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "userId", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            },
            "delete": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Remove a project member",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/projects/{id}/ticket-types": {
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Replace the ticket types",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/projects/{id}/ticket-statuses": {
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Replace the ticket statuses",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/projects/{id}/ticket-priorities": {
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Replace the ticket priorities",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/tickets": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Create a ticket",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            },
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "List tickets",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/tickets/{id}": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Get a ticket",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            },
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Update a ticket",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            },
            "delete": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Delete a ticket",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/tickets/{id}/assign": {
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Assign or unassign a ticket",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/tickets/{id}/status": {
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Change a ticket's status",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/tickets/{id}/history": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Ticket change history",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/tickets/{id}/watchers": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Watch a ticket",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/tickets/{id}/watchers/{userId}": {
            "delete": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Stop watching a ticket",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/tickets/{id}/attachments": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Attach a file to a ticket",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/tickets/{id}/attachments/{attachmentId}": {
            "delete": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Remove a ticket attachment",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "attachmentId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/tickets/{id}/comments": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "List a ticket's comments",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            },
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Comment on a ticket",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/comments/{id}": {
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Edit a comment",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            },
            "delete": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Delete a comment",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/comments/{id}/attachments": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Attach a file to a comment",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/comments/{id}/attachments/{attachmentId}": {
            "delete": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Remove a comment attachment",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "attachmentId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/activities/user/{userId}": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["activities"],
                "summary": "A user's activity",
                "parameters": [
                    {"type": "integer", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/activities/project/{projectId}": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["activities"],
                "summary": "A project's activity",
                "parameters": [
                    {"type": "integer", "name": "projectId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/activities/team/{teamId}": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["activities"],
                "summary": "A team's activity",
                "parameters": [
                    {"type": "integer", "name": "teamId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/activities/entity/{entityType}/{entityId}": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["activities"],
                "summary": "An entity's activity",
                "parameters": [
                    {"type": "string", "name": "entityType", "in": "path", "required": true},
                    {"type": "integer", "name": "entityId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "List notifications",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            },
            "delete": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Delete all notifications",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/notifications/unread/count": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Unread notification count",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/notifications/read-all": {
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Mark all notifications read",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/notifications/{id}/read": {
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Mark a notification read",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/notifications/{id}": {
            "delete": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Delete a notification",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "utils.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"$ref": "#/definitions/utils.ErrorInfo"},
                "message": {"type": "string"}
            }
        },
        "utils.ErrorInfo": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Type \"Bearer\" followed by a space and the access token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Trackr API",
	Description:      "Project, ticket and team tracking API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
