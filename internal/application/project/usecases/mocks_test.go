package usecases

import (
	"github.com/trackr-io/trackr/internal/application/activity"
	"github.com/trackr-io/trackr/internal/application/notification"
	"github.com/trackr-io/trackr/internal/application/testutil"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type mockEnforcer struct {
	EnforceFunc func(role, resource, action string) (bool, error)
}

func (m *mockEnforcer) Enforce(role, resource, action string) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(role, resource, action)
	}
	return role == "admin" || role == "developer", nil
}

type env struct {
	projects      *testutil.ProjectRepository
	teams         *testutil.TeamRepository
	users         *testutil.UserRepository
	tickets       *testutil.TicketRepository
	history       *testutil.HistoryRepository
	comments      *testutil.CommentRepository
	activities    *testutil.ActivityRepository
	notifications *testutil.NotificationRepository
	tx            *testutil.TxManager
	recorder      *activity.Recorder
	dispatcher    *notification.Dispatcher
	log           logger.Interface
}

func newEnv() *env {
	e := &env{
		projects:      testutil.NewProjectRepository(),
		teams:         testutil.NewTeamRepository(),
		users:         testutil.NewUserRepository(),
		tickets:       testutil.NewTicketRepository(),
		history:       testutil.NewHistoryRepository(),
		comments:      testutil.NewCommentRepository(),
		activities:    testutil.NewActivityRepository(),
		notifications: testutil.NewNotificationRepository(),
		tx:            &testutil.TxManager{},
		log:           logger.NewNop(),
	}
	e.recorder = activity.NewRecorder(e.activities, e.log)
	e.dispatcher = notification.NewDispatcher(e.notifications, e.log)
	return e
}

func (e *env) createUseCase() *CreateProjectUseCase {
	return NewCreateProjectUseCase(e.projects, e.teams, &mockEnforcer{}, e.recorder, e.dispatcher, e.log)
}
