package team

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/team/dto"
	"github.com/trackr-io/trackr/internal/application/team/usecases"
	"github.com/trackr-io/trackr/internal/shared/query"
)

type createTeamExecutor interface {
	Execute(ctx context.Context, cmd usecases.CreateTeamCommand) (*dto.TeamDTO, error)
}

type memberService interface {
	Add(ctx context.Context, cmd usecases.MemberCommand) (*dto.TeamDTO, error)
	Remove(ctx context.Context, cmd usecases.MemberCommand) error
	UpdateRole(ctx context.Context, cmd usecases.MemberCommand) (*dto.TeamDTO, error)
}

type teamQueries interface {
	Get(ctx context.Context, actorID, teamID uint) (*dto.TeamDTO, error)
	List(ctx context.Context, actorID uint, page query.PageFilter) (*usecases.ListTeamsResult, error)
}
