package http

import (
	activityHandlers "github.com/trackr-io/trackr/internal/interfaces/http/handlers/activity"
	commentHandlers "github.com/trackr-io/trackr/internal/interfaces/http/handlers/comment"
	notificationHandlers "github.com/trackr-io/trackr/internal/interfaces/http/handlers/notification"
	projectHandlers "github.com/trackr-io/trackr/internal/interfaces/http/handlers/project"
	teamHandlers "github.com/trackr-io/trackr/internal/interfaces/http/handlers/team"
	ticketHandlers "github.com/trackr-io/trackr/internal/interfaces/http/handlers/ticket"
	userHandlers "github.com/trackr-io/trackr/internal/interfaces/http/handlers/user"
)

type allHandlers struct {
	userHandler         *userHandlers.Handler
	teamHandler         *teamHandlers.Handler
	projectHandler      *projectHandlers.Handler
	ticketHandler       *ticketHandlers.TicketHandler
	commentHandler      *commentHandlers.Handler
	activityHandler     *activityHandlers.Handler
	notificationHandler *notificationHandlers.Handler
}

func (c *Container) initHandlers() {
	u := c.ucs
	log := c.log.Named("http")

	c.hdlrs = &allHandlers{
		userHandler: userHandlers.NewHandler(u.registerUC, u.loginUC, u.refreshUC, u.profileUC, u.searchUC, u.changeRoleUC, log),
		teamHandler: teamHandlers.NewHandler(u.createTeamUC, u.teamMembersUC, u.queryTeamsUC, log),
		projectHandler: projectHandlers.NewHandler(projectHandlers.UseCases{
			Create:             u.createProjectUC,
			Update:             u.updateProjectUC,
			Delete:             u.deleteProjectUC,
			Get:                u.getProjectUC,
			List:               u.listProjectsUC,
			AddMember:          u.addProjectMemberUC,
			RemoveMember:       u.removeProjectMember,
			UpdateMemberRole:   u.updateMemberRoleUC,
			UpdateTicketConfig: u.updateTicketConfigUC,
		}, log),
		ticketHandler: ticketHandlers.NewTicketHandler(
			u.createTicketUC,
			u.updateTicketUC,
			u.assignTicketUC,
			u.transitionStatusUC,
			u.deleteTicketUC,
			u.queryTicketsUC,
			u.watchersUC,
			u.ticketAttachUC,
			log,
		),
		commentHandler: commentHandlers.NewHandler(u.createCommentUC, u.editCommentUC, u.deleteCommentUC, u.listCommentsUC, u.commentAttachUC, log),
		activityHandler: activityHandlers.NewHandler(u.userActivityUC, u.projectActivityUC, u.teamActivityUC, u.entityActivityUC, log),
		notificationHandler: notificationHandlers.NewHandler(
			u.listNotificationsUC,
			u.unreadCountUC,
			u.markAllReadUC,
			u.markReadUC,
			u.deleteNotificationUC,
			u.deleteAllUC,
			log,
		),
	}
}
