package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/team/dto"
	"github.com/trackr-io/trackr/internal/domain/team"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/query"
)

type ListTeamsResult struct {
	Teams    []*dto.TeamDTO
	Total    int64
	Page     int
	PageSize int
}

type QueryTeamsUseCase struct {
	teamRepo team.Repository
	logger   logger.Interface
}

func NewQueryTeamsUseCase(teamRepo team.Repository, logger logger.Interface) *QueryTeamsUseCase {
	return &QueryTeamsUseCase{teamRepo: teamRepo, logger: logger}
}

func (uc *QueryTeamsUseCase) Get(ctx context.Context, actorID, teamID uint) (*dto.TeamDTO, error) {
	t, err := access.TeamMember(ctx, uc.teamRepo, teamID, actorID)
	if err != nil {
		return nil, err
	}
	return dto.ToTeamDTO(t), nil
}

// List returns the teams the actor belongs to.
func (uc *QueryTeamsUseCase) List(ctx context.Context, actorID uint, page query.PageFilter) (*ListTeamsResult, error) {
	page = page.Normalize()
	list, total, err := uc.teamRepo.ListForMember(ctx, actorID, page)
	if err != nil {
		uc.logger.Errorw("failed to list teams", "actor_id", actorID, "error", err)
		return nil, access.Wrap(err, "failed to list teams")
	}
	return &ListTeamsResult{Teams: dto.ToTeamDTOs(list), Total: total, Page: page.Page, PageSize: page.PageSize}, nil
}
