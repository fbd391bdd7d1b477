// Package activity serves the activity feed endpoints.
package activity

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/trackr-io/trackr/internal/application/activity/usecases"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/utils"
)

type userFeed interface {
	Execute(ctx context.Context, cmd usecases.ListUserActivityCommand) (*usecases.ListActivityResult, error)
}

type projectFeed interface {
	Execute(ctx context.Context, cmd usecases.ListProjectActivityCommand) (*usecases.ListActivityResult, error)
}

type teamFeed interface {
	Execute(ctx context.Context, cmd usecases.ListTeamActivityCommand) (*usecases.ListActivityResult, error)
}

type entityFeed interface {
	Execute(ctx context.Context, cmd usecases.ListEntityActivityCommand) (*usecases.ListActivityResult, error)
}

type Handler struct {
	userUC    userFeed
	projectUC projectFeed
	teamUC    teamFeed
	entityUC  entityFeed
	logger    logger.Interface
}

func NewHandler(userUC userFeed, projectUC projectFeed, teamUC teamFeed, entityUC entityFeed, log logger.Interface) *Handler {
	return &Handler{userUC: userUC, projectUC: projectUC, teamUC: teamUC, entityUC: entityUC, logger: log}
}

// ListUser handles GET /activities/user/:userId
// @Summary A user's activity, newest first
// @Description Allowed for the user themself or anyone sharing a project or team with them
// @Tags activities
// @Produce json
// @Security Bearer
// @Param userId path int true "User ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /activities/user/{userId} [get]
func (h *Handler) ListUser(c *gin.Context) {
	actorID, id, ok := target(c, "userId", "user")
	if !ok {
		return
	}
	h.respond(c)(h.userUC.Execute(c.Request.Context(), usecases.ListUserActivityCommand{
		ActorID: actorID,
		UserID:  id,
		Page:    utils.ParsePagination(c),
	}))
}

// ListProject handles GET /activities/project/:projectId
// @Summary A project's activity, newest first
// @Tags activities
// @Produce json
// @Security Bearer
// @Param projectId path int true "Project ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /activities/project/{projectId} [get]
func (h *Handler) ListProject(c *gin.Context) {
	actorID, id, ok := target(c, "projectId", "project")
	if !ok {
		return
	}
	h.respond(c)(h.projectUC.Execute(c.Request.Context(), usecases.ListProjectActivityCommand{
		ActorID:   actorID,
		ProjectID: id,
		Page:      utils.ParsePagination(c),
	}))
}

// ListTeam handles GET /activities/team/:teamId
// @Summary A team's activity, newest first
// @Tags activities
// @Produce json
// @Security Bearer
// @Param teamId path int true "Team ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /activities/team/{teamId} [get]
func (h *Handler) ListTeam(c *gin.Context) {
	actorID, id, ok := target(c, "teamId", "team")
	if !ok {
		return
	}
	h.respond(c)(h.teamUC.Execute(c.Request.Context(), usecases.ListTeamActivityCommand{
		ActorID: actorID,
		TeamID:  id,
		Page:    utils.ParsePagination(c),
	}))
}

// ListEntity handles GET /activities/entity/:entityType/:entityId
// @Summary Activity about one entity, newest first
// @Tags activities
// @Produce json
// @Security Bearer
// @Param entityType path string true "project, team, ticket, comment or user"
// @Param entityId path int true "Entity ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /activities/entity/{entityType}/{entityId} [get]
func (h *Handler) ListEntity(c *gin.Context) {
	actorID, id, ok := target(c, "entityId", "entity")
	if !ok {
		return
	}
	entityType := c.Param("entityType")
	if entityType == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("entity type is required"))
		return
	}
	h.respond(c)(h.entityUC.Execute(c.Request.Context(), usecases.ListEntityActivityCommand{
		ActorID:    actorID,
		EntityType: entityType,
		EntityID:   id,
		Page:       utils.ParsePagination(c),
	}))
}

func (h *Handler) respond(c *gin.Context) func(*usecases.ListActivityResult, error) {
	return func(result *usecases.ListActivityResult, err error) {
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		utils.ListSuccessResponse(c, result.Activities, result.Total, result.Page, result.PageSize)
	}
}

func target(c *gin.Context, param, entity string) (actorID, id uint, ok bool) {
	actorID, _, err := utils.CurrentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, 0, false
	}
	id, err = utils.ParseIDParam(c, param, entity)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, 0, false
	}
	return actorID, id, true
}
