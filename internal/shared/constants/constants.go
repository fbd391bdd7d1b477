package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// Ticket numbering
	NumberingSchemeGlobal  = "globalSequential"
	NumberingSchemeProject = "projectScoped"
	NumberingBackendDB     = "database"
	NumberingBackendRedis  = "redis"
	DefaultTicketPrefix    = "TICK"

	// Tables
	TableUsers          = "users"
	TableTeams          = "teams"
	TableTeamMembers    = "team_members"
	TableProjects       = "projects"
	TableProjectMembers = "project_members"
	TableTickets        = "tickets"
	TableTicketHistory  = "ticket_history"
	TableTicketSeqs     = "ticket_sequences"
	TableComments       = "comments"
	TableActivities     = "activities"
	TableNotifications  = "notifications"

	ErrMsgInternalServerError = "Internal server error occurred"
)
