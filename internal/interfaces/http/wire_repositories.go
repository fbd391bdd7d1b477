package http

import (
	"gorm.io/gorm"

	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/comment"
	"github.com/trackr-io/trackr/internal/domain/notification"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/team"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/domain/user"
	"github.com/trackr-io/trackr/internal/infrastructure/repository"
)

// repositories holds the gorm-backed repositories.
type repositories struct {
	userRepo         user.Repository
	teamRepo         team.Repository
	projectRepo      project.Repository
	ticketRepo       ticket.Repository
	historyRepo      ticket.HistoryRepository
	commentRepo      comment.Repository
	activityRepo     activity.Repository
	notificationRepo notification.Repository
	sequenceCounter  *repository.SequenceCounterImpl
}

func newRepositories(db *gorm.DB) *repositories {
	return &repositories{
		userRepo:         repository.NewUserRepository(db),
		teamRepo:         repository.NewTeamRepository(db),
		projectRepo:      repository.NewProjectRepository(db),
		ticketRepo:       repository.NewTicketRepository(db),
		historyRepo:      repository.NewTicketHistoryRepository(db),
		commentRepo:      repository.NewCommentRepository(db),
		activityRepo:     repository.NewActivityRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
		sequenceCounter:  repository.NewSequenceCounter(db),
	}
}
