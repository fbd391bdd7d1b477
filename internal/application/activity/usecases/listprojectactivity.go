package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/query"
)

type ListProjectActivityCommand struct {
	ActorID   uint
	ProjectID uint
	Page      query.PageFilter
}

type ListProjectActivityUseCase struct {
	activityRepo activity.Repository
	projectRepo  project.Repository
	logger       logger.Interface
}

func NewListProjectActivityUseCase(
	activityRepo activity.Repository,
	projectRepo project.Repository,
	logger logger.Interface,
) *ListProjectActivityUseCase {
	return &ListProjectActivityUseCase{
		activityRepo: activityRepo,
		projectRepo:  projectRepo,
		logger:       logger,
	}
}

func (uc *ListProjectActivityUseCase) Execute(ctx context.Context, cmd ListProjectActivityCommand) (*ListActivityResult, error) {
	if _, err := access.ProjectMember(ctx, uc.projectRepo, cmd.ProjectID, cmd.ActorID); err != nil {
		return nil, err
	}

	page := cmd.Page.Normalize()
	list, total, err := uc.activityRepo.List(ctx, activity.Filter{ProjectID: cmd.ProjectID, Page: page})
	if err != nil {
		uc.logger.Errorw("failed to list project activity", "project_id", cmd.ProjectID, "error", err)
		return nil, access.Wrap(err, "failed to list activity")
	}
	return newListResult(list, total, page), nil
}
