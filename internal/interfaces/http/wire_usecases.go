package http

import (
	activityUsecases "github.com/trackr-io/trackr/internal/application/activity/usecases"
	commentUsecases "github.com/trackr-io/trackr/internal/application/comment/usecases"
	notificationUsecases "github.com/trackr-io/trackr/internal/application/notification/usecases"
	projectUsecases "github.com/trackr-io/trackr/internal/application/project/usecases"
	teamUsecases "github.com/trackr-io/trackr/internal/application/team/usecases"
	ticketUsecases "github.com/trackr-io/trackr/internal/application/ticket/usecases"
	userUsecases "github.com/trackr-io/trackr/internal/application/user/usecases"
	vo "github.com/trackr-io/trackr/internal/domain/user/valueobjects"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// User / Auth
	registerUC   *userUsecases.RegisterUseCase
	loginUC      *userUsecases.LoginUseCase
	refreshUC    *userUsecases.RefreshTokenUseCase
	profileUC    *userUsecases.ProfileUseCase
	searchUC     *userUsecases.SearchUsersUseCase
	changeRoleUC *userUsecases.ChangeRoleUseCase

	// Team
	createTeamUC  *teamUsecases.CreateTeamUseCase
	teamMembersUC *teamUsecases.MembersUseCase
	queryTeamsUC  *teamUsecases.QueryTeamsUseCase

	// Project
	createProjectUC      *projectUsecases.CreateProjectUseCase
	updateProjectUC      *projectUsecases.UpdateProjectUseCase
	deleteProjectUC      *projectUsecases.DeleteProjectUseCase
	getProjectUC         *projectUsecases.GetProjectUseCase
	listProjectsUC       *projectUsecases.ListProjectsUseCase
	addProjectMemberUC   *projectUsecases.AddMemberUseCase
	removeProjectMember  *projectUsecases.RemoveMemberUseCase
	updateMemberRoleUC   *projectUsecases.UpdateMemberRoleUseCase
	updateTicketConfigUC *projectUsecases.UpdateTicketConfigUseCase

	// Ticket
	createTicketUC     *ticketUsecases.CreateTicketUseCase
	updateTicketUC     *ticketUsecases.UpdateTicketUseCase
	assignTicketUC     *ticketUsecases.AssignTicketUseCase
	transitionStatusUC *ticketUsecases.TransitionStatusUseCase
	deleteTicketUC     *ticketUsecases.DeleteTicketUseCase
	queryTicketsUC     *ticketUsecases.QueryTicketsUseCase
	watchersUC         *ticketUsecases.WatchersUseCase
	ticketAttachUC     *ticketUsecases.AttachmentsUseCase

	// Comment
	createCommentUC *commentUsecases.CreateCommentUseCase
	editCommentUC   *commentUsecases.EditCommentUseCase
	deleteCommentUC *commentUsecases.DeleteCommentUseCase
	listCommentsUC  *commentUsecases.ListCommentsUseCase
	commentAttachUC *commentUsecases.CommentAttachmentsUseCase

	// Activity
	userActivityUC    *activityUsecases.ListUserActivityUseCase
	projectActivityUC *activityUsecases.ListProjectActivityUseCase
	teamActivityUC    *activityUsecases.ListTeamActivityUseCase
	entityActivityUC  *activityUsecases.ListEntityActivityUseCase

	// Notification
	listNotificationsUC  *notificationUsecases.ListNotificationsUseCase
	unreadCountUC        *notificationUsecases.GetUnreadCountUseCase
	markAllReadUC        *notificationUsecases.MarkAllReadUseCase
	markReadUC           *notificationUsecases.MarkNotificationReadUseCase
	deleteNotificationUC *notificationUsecases.DeleteNotificationUseCase
	deleteAllUC          *notificationUsecases.DeleteAllNotificationsUseCase
}

func (c *Container) initUseCases() {
	r := c.repos
	log := c.log

	c.ucs = &allUseCases{
		registerUC:   userUsecases.NewRegisterUseCase(r.userRepo, c.hasher, vo.DefaultPasswordPolicy(), c.recorder, log),
		loginUC:      userUsecases.NewLoginUseCase(r.userRepo, c.hasher, c.jwtSvc, c.recorder, log),
		refreshUC:    userUsecases.NewRefreshTokenUseCase(c.jwtSvc, log),
		profileUC:    userUsecases.NewProfileUseCase(r.userRepo, log),
		searchUC:     userUsecases.NewSearchUsersUseCase(r.userRepo, r.projectRepo, log),
		changeRoleUC: userUsecases.NewChangeRoleUseCase(r.userRepo, c.enforcer, c.recorder, log),

		createTeamUC:  teamUsecases.NewCreateTeamUseCase(r.teamRepo, c.recorder, log),
		teamMembersUC: teamUsecases.NewMembersUseCase(r.teamRepo, r.userRepo, c.recorder, c.dispatcher, log),
		queryTeamsUC:  teamUsecases.NewQueryTeamsUseCase(r.teamRepo, log),

		createProjectUC:      projectUsecases.NewCreateProjectUseCase(r.projectRepo, r.teamRepo, c.enforcer, c.recorder, c.dispatcher, log),
		updateProjectUC:      projectUsecases.NewUpdateProjectUseCase(r.projectRepo, c.recorder, log),
		deleteProjectUC:      projectUsecases.NewDeleteProjectUseCase(r.projectRepo, r.ticketRepo, r.historyRepo, r.commentRepo, c.txManager, c.recorder, log),
		getProjectUC:         projectUsecases.NewGetProjectUseCase(r.projectRepo, log),
		listProjectsUC:       projectUsecases.NewListProjectsUseCase(r.projectRepo, log),
		addProjectMemberUC:   projectUsecases.NewAddMemberUseCase(r.projectRepo, r.teamRepo, r.userRepo, c.recorder, c.dispatcher, log),
		removeProjectMember:  projectUsecases.NewRemoveMemberUseCase(r.projectRepo, c.recorder, log),
		updateMemberRoleUC:   projectUsecases.NewUpdateMemberRoleUseCase(r.projectRepo, c.recorder, c.dispatcher, log),
		updateTicketConfigUC: projectUsecases.NewUpdateTicketConfigUseCase(r.projectRepo, c.recorder, log),

		createTicketUC:     ticketUsecases.NewCreateTicketUseCase(r.ticketRepo, r.historyRepo, r.projectRepo, c.numberer, c.txManager, c.recorder, c.dispatcher, log),
		updateTicketUC:     ticketUsecases.NewUpdateTicketUseCase(r.ticketRepo, r.historyRepo, r.projectRepo, c.txManager, c.recorder, c.dispatcher, log),
		assignTicketUC:     ticketUsecases.NewAssignTicketUseCase(r.ticketRepo, r.historyRepo, r.projectRepo, c.txManager, c.recorder, c.dispatcher, log),
		transitionStatusUC: ticketUsecases.NewTransitionStatusUseCase(r.ticketRepo, r.historyRepo, r.projectRepo, c.txManager, c.recorder, c.dispatcher, log),
		deleteTicketUC:     ticketUsecases.NewDeleteTicketUseCase(r.ticketRepo, r.historyRepo, r.commentRepo, r.projectRepo, c.txManager, c.recorder, log),
		queryTicketsUC:     ticketUsecases.NewQueryTicketsUseCase(r.ticketRepo, r.historyRepo, r.projectRepo, log),
		watchersUC:         ticketUsecases.NewWatchersUseCase(r.ticketRepo, r.projectRepo, c.recorder, log),
		ticketAttachUC:     ticketUsecases.NewAttachmentsUseCase(r.ticketRepo, r.historyRepo, r.projectRepo, c.txManager, c.recorder, log),

		createCommentUC: commentUsecases.NewCreateCommentUseCase(r.commentRepo, r.ticketRepo, r.projectRepo, commentUsecases.NopMentionResolver{}, c.txManager, c.recorder, c.dispatcher, c.renderer, log),
		editCommentUC:   commentUsecases.NewEditCommentUseCase(r.commentRepo, r.ticketRepo, r.projectRepo, c.recorder, c.renderer, log),
		deleteCommentUC: commentUsecases.NewDeleteCommentUseCase(r.commentRepo, r.ticketRepo, r.projectRepo, c.recorder, log),
		listCommentsUC:  commentUsecases.NewListCommentsUseCase(r.commentRepo, r.ticketRepo, r.projectRepo, c.renderer, log),
		commentAttachUC: commentUsecases.NewCommentAttachmentsUseCase(r.commentRepo, r.ticketRepo, r.projectRepo, c.recorder, c.renderer, log),

		userActivityUC:    activityUsecases.NewListUserActivityUseCase(r.activityRepo, r.projectRepo, r.teamRepo, log),
		projectActivityUC: activityUsecases.NewListProjectActivityUseCase(r.activityRepo, r.projectRepo, log),
		teamActivityUC:    activityUsecases.NewListTeamActivityUseCase(r.activityRepo, r.teamRepo, log),
		entityActivityUC:  activityUsecases.NewListEntityActivityUseCase(r.activityRepo, r.projectRepo, r.teamRepo, r.ticketRepo, log),

		listNotificationsUC:  notificationUsecases.NewListNotificationsUseCase(r.notificationRepo, log),
		unreadCountUC:        notificationUsecases.NewGetUnreadCountUseCase(r.notificationRepo, log),
		markAllReadUC:        notificationUsecases.NewMarkAllReadUseCase(r.notificationRepo, log),
		markReadUC:           notificationUsecases.NewMarkNotificationReadUseCase(r.notificationRepo, log),
		deleteNotificationUC: notificationUsecases.NewDeleteNotificationUseCase(r.notificationRepo, log),
		deleteAllUC:          notificationUsecases.NewDeleteAllNotificationsUseCase(r.notificationRepo, log),
	}
}
