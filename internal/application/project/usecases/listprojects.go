package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	appproject "github.com/trackr-io/trackr/internal/application/project"
	"github.com/trackr-io/trackr/internal/application/project/dto"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/shared/authorization"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/query"
)

type ListProjectsCommand struct {
	ActorID   uint
	ActorRole authorization.UserRole
	Status    string
	Search    string
	Page      query.PageFilter
}

type ListProjectsResult struct {
	Projects []*dto.ProjectDTO
	Total    int64
	Page     int
	PageSize int
}

type ListProjectsUseCase struct {
	projectRepo project.Repository
	logger      logger.Interface
}

func NewListProjectsUseCase(projectRepo project.Repository, logger logger.Interface) *ListProjectsUseCase {
	return &ListProjectsUseCase{projectRepo: projectRepo, logger: logger}
}

func (uc *ListProjectsUseCase) Execute(ctx context.Context, cmd ListProjectsCommand) (*ListProjectsResult, error) {
	filter := project.ListFilter{
		Visibility: appproject.VisibilityFor(cmd.ActorRole, cmd.ActorID).Query(),
		Search:     cmd.Search,
		Page:       cmd.Page.Normalize(),
	}
	if cmd.Status != "" {
		s := project.Status(cmd.Status)
		if !s.IsValid() {
			return nil, errors.NewValidationError("invalid project status", cmd.Status)
		}
		filter.Status = &s
	}

	list, total, err := uc.projectRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list projects", "actor_id", cmd.ActorID, "error", err)
		return nil, access.Wrap(err, "failed to list projects")
	}
	return &ListProjectsResult{
		Projects: dto.ToProjectDTOs(list),
		Total:    total,
		Page:     filter.Page.Page,
		PageSize: filter.Page.PageSize,
	}, nil
}
