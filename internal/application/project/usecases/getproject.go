package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/project/dto"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type GetProjectUseCase struct {
	projectRepo project.Repository
	logger      logger.Interface
}

func NewGetProjectUseCase(projectRepo project.Repository, logger logger.Interface) *GetProjectUseCase {
	return &GetProjectUseCase{projectRepo: projectRepo, logger: logger}
}

func (uc *GetProjectUseCase) Execute(ctx context.Context, actorID, projectID uint) (*dto.ProjectDTO, error) {
	p, err := access.ProjectMember(ctx, uc.projectRepo, projectID, actorID)
	if err != nil {
		return nil, err
	}
	return dto.ToProjectDTO(p), nil
}
