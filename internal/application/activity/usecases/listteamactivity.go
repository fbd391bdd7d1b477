package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/team"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/query"
)

type ListTeamActivityCommand struct {
	ActorID uint
	TeamID  uint
	Page    query.PageFilter
}

type ListTeamActivityUseCase struct {
	activityRepo activity.Repository
	teamRepo     team.Repository
	logger       logger.Interface
}

func NewListTeamActivityUseCase(
	activityRepo activity.Repository,
	teamRepo team.Repository,
	logger logger.Interface,
) *ListTeamActivityUseCase {
	return &ListTeamActivityUseCase{
		activityRepo: activityRepo,
		teamRepo:     teamRepo,
		logger:       logger,
	}
}

func (uc *ListTeamActivityUseCase) Execute(ctx context.Context, cmd ListTeamActivityCommand) (*ListActivityResult, error) {
	if _, err := access.TeamMember(ctx, uc.teamRepo, cmd.TeamID, cmd.ActorID); err != nil {
		return nil, err
	}

	page := cmd.Page.Normalize()
	list, total, err := uc.activityRepo.List(ctx, activity.Filter{TeamID: cmd.TeamID, Page: page})
	if err != nil {
		uc.logger.Errorw("failed to list team activity", "team_id", cmd.TeamID, "error", err)
		return nil, access.Wrap(err, "failed to list activity")
	}
	return newListResult(list, total, page), nil
}
