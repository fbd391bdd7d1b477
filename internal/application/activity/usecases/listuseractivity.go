package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/team"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/query"
)

type ListUserActivityCommand struct {
	ActorID uint
	UserID  uint
	Page    query.PageFilter
}

type ListUserActivityUseCase struct {
	activityRepo activity.Repository
	projectRepo  project.Repository
	teamRepo     team.Repository
	logger       logger.Interface
}

func NewListUserActivityUseCase(
	activityRepo activity.Repository,
	projectRepo project.Repository,
	teamRepo team.Repository,
	logger logger.Interface,
) *ListUserActivityUseCase {
	return &ListUserActivityUseCase{
		activityRepo: activityRepo,
		projectRepo:  projectRepo,
		teamRepo:     teamRepo,
		logger:       logger,
	}
}

func (uc *ListUserActivityUseCase) Execute(ctx context.Context, cmd ListUserActivityCommand) (*ListActivityResult, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	allowed, err := access.CanSeeUser(ctx, uc.projectRepo, uc.teamRepo, cmd.ActorID, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to check shared membership", "actor_id", cmd.ActorID, "user_id", cmd.UserID, "error", err)
		return nil, errors.NewInternalError("failed to check access")
	}
	if !allowed {
		return nil, errors.NewForbiddenError("you do not share a project or team with this user")
	}

	page := cmd.Page.Normalize()
	list, total, err := uc.activityRepo.List(ctx, activity.Filter{ActorID: cmd.UserID, Page: page})
	if err != nil {
		uc.logger.Errorw("failed to list user activity", "user_id", cmd.UserID, "error", err)
		return nil, access.Wrap(err, "failed to list activity")
	}
	return newListResult(list, total, page), nil
}
