package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/team"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/query"
)

type ListEntityActivityCommand struct {
	ActorID    uint
	EntityType string
	EntityID   uint
	Page       query.PageFilter
}

type ListEntityActivityUseCase struct {
	activityRepo activity.Repository
	projectRepo  project.Repository
	teamRepo     team.Repository
	ticketRepo   ticket.Repository
	logger       logger.Interface
}

func NewListEntityActivityUseCase(
	activityRepo activity.Repository,
	projectRepo project.Repository,
	teamRepo team.Repository,
	ticketRepo ticket.Repository,
	logger logger.Interface,
) *ListEntityActivityUseCase {
	return &ListEntityActivityUseCase{
		activityRepo: activityRepo,
		projectRepo:  projectRepo,
		teamRepo:     teamRepo,
		ticketRepo:   ticketRepo,
		logger:       logger,
	}
}

func (uc *ListEntityActivityUseCase) Execute(ctx context.Context, cmd ListEntityActivityCommand) (*ListActivityResult, error) {
	entityType := activity.EntityType(cmd.EntityType)
	if !entityType.IsQueryable() {
		return nil, errors.NewValidationError("invalid entity type", "allowed: ticket, project, team, user")
	}
	if cmd.EntityID == 0 {
		return nil, errors.NewValidationError("entity ID is required")
	}

	if err := uc.authorize(ctx, cmd.ActorID, entityType, cmd.EntityID); err != nil {
		return nil, err
	}

	page := cmd.Page.Normalize()
	list, total, err := uc.activityRepo.List(ctx, activity.Filter{
		EntityType: entityType,
		EntityID:   cmd.EntityID,
		Page:       page,
	})
	if err != nil {
		uc.logger.Errorw("failed to list entity activity",
			"entity_type", entityType,
			"entity_id", cmd.EntityID,
			"error", err,
		)
		return nil, access.Wrap(err, "failed to list activity")
	}
	return newListResult(list, total, page), nil
}

func (uc *ListEntityActivityUseCase) authorize(ctx context.Context, actorID uint, entityType activity.EntityType, entityID uint) error {
	switch entityType {
	case activity.EntityTicket:
		t, err := uc.ticketRepo.GetByID(ctx, entityID)
		if err != nil {
			return access.Wrap(err, "failed to get ticket")
		}
		if t == nil {
			return errors.NewNotFoundError("ticket not found")
		}
		_, err = access.ProjectMember(ctx, uc.projectRepo, t.ProjectID(), actorID)
		return err
	case activity.EntityProject:
		_, err := access.ProjectMember(ctx, uc.projectRepo, entityID, actorID)
		return err
	case activity.EntityTeam:
		_, err := access.TeamMember(ctx, uc.teamRepo, entityID, actorID)
		return err
	default:
		allowed, err := access.CanSeeUser(ctx, uc.projectRepo, uc.teamRepo, actorID, entityID)
		if err != nil {
			uc.logger.Errorw("failed to check shared membership", "actor_id", actorID, "user_id", entityID, "error", err)
			return errors.NewInternalError("failed to check access")
		}
		if !allowed {
			return errors.NewForbiddenError("you do not share a project or team with this user")
		}
		return nil
	}
}
