package usecases

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trackr-io/trackr/internal/application/activity"
	"github.com/trackr-io/trackr/internal/application/notification"
	"github.com/trackr-io/trackr/internal/application/testutil"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/shared/authorization"
	"github.com/trackr-io/trackr/internal/shared/constants"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type env struct {
	projects      *testutil.ProjectRepository
	users         *testutil.UserRepository
	tickets       *testutil.TicketRepository
	history       *testutil.HistoryRepository
	comments      *testutil.CommentRepository
	activities    *testutil.ActivityRepository
	notifications *testutil.NotificationRepository
	tx            *testutil.TxManager
	numbers       *ticket.Numberer
	recorder      *activity.Recorder
	dispatcher    *notification.Dispatcher
	log           logger.Interface

	// reporter owns project, dev and dev2 are developer members.
	reporter, dev, dev2, outsider uint
	project                       *project.Project
}

func newEnv(t *testing.T) *env {
	t.Helper()
	numbers, err := ticket.NewNumberer(constants.NumberingSchemeProject, "", testutil.NewSequenceCounter())
	require.NoError(t, err)

	e := &env{
		projects:      testutil.NewProjectRepository(),
		users:         testutil.NewUserRepository(),
		tickets:       testutil.NewTicketRepository(),
		history:       testutil.NewHistoryRepository(),
		comments:      testutil.NewCommentRepository(),
		activities:    testutil.NewActivityRepository(),
		notifications: testutil.NewNotificationRepository(),
		tx:            &testutil.TxManager{},
		numbers:       numbers,
		log:           logger.NewNop(),
	}
	e.recorder = activity.NewRecorder(e.activities, e.log)
	e.dispatcher = notification.NewDispatcher(e.notifications, e.log)

	e.reporter = testutil.SeedUser(t, e.users, "reporter", authorization.RoleDeveloper).ID()
	e.dev = testutil.SeedUser(t, e.users, "dev", authorization.RoleDeveloper).ID()
	e.dev2 = testutil.SeedUser(t, e.users, "dev2", authorization.RoleDeveloper).ID()
	e.outsider = testutil.SeedUser(t, e.users, "outsider", authorization.RoleUser).ID()
	e.project = testutil.SeedProject(t, e.projects, "Customer Portal", "CP", e.reporter, e.dev, e.dev2)
	return e
}

func (e *env) create() *CreateTicketUseCase {
	return NewCreateTicketUseCase(e.tickets, e.history, e.projects, e.numbers, e.tx, e.recorder, e.dispatcher, e.log)
}

func (e *env) update() *UpdateTicketUseCase {
	return NewUpdateTicketUseCase(e.tickets, e.history, e.projects, e.tx, e.recorder, e.dispatcher, e.log)
}

func (e *env) assign() *AssignTicketUseCase {
	return NewAssignTicketUseCase(e.tickets, e.history, e.projects, e.tx, e.recorder, e.dispatcher, e.log)
}

func (e *env) transition() *TransitionStatusUseCase {
	return NewTransitionStatusUseCase(e.tickets, e.history, e.projects, e.tx, e.recorder, e.dispatcher, e.log)
}

func (e *env) seedTicket(t *testing.T, assigneeID *uint) *ticket.Ticket {
	t.Helper()
	return testutil.SeedTicket(t, e.tickets, e.project, e.reporter, assigneeID)
}

func ptr[T any](v T) *T { return &v }
