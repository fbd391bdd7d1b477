package project

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/project/dto"
	"github.com/trackr-io/trackr/internal/application/project/usecases"
)

type createProjectExecutor interface {
	Execute(ctx context.Context, cmd usecases.CreateProjectCommand) (*dto.ProjectDTO, error)
}

type updateProjectExecutor interface {
	Execute(ctx context.Context, cmd usecases.UpdateProjectCommand) (*dto.ProjectDTO, error)
}

type deleteProjectExecutor interface {
	Execute(ctx context.Context, cmd usecases.DeleteProjectCommand) error
}

type getProjectExecutor interface {
	Execute(ctx context.Context, actorID, projectID uint) (*dto.ProjectDTO, error)
}

type listProjectsExecutor interface {
	Execute(ctx context.Context, cmd usecases.ListProjectsCommand) (*usecases.ListProjectsResult, error)
}

type addMemberExecutor interface {
	Execute(ctx context.Context, cmd usecases.AddMemberCommand) (*dto.ProjectDTO, error)
}

type removeMemberExecutor interface {
	Execute(ctx context.Context, cmd usecases.RemoveMemberCommand) error
}

type updateMemberRoleExecutor interface {
	Execute(ctx context.Context, cmd usecases.UpdateMemberRoleCommand) (*dto.ProjectDTO, error)
}

type updateTicketConfigExecutor interface {
	Execute(ctx context.Context, cmd usecases.UpdateTicketConfigCommand) (*dto.ProjectDTO, error)
}

// UseCases groups the project use cases consumed by Handler.
type UseCases struct {
	Create             createProjectExecutor
	Update             updateProjectExecutor
	Delete             deleteProjectExecutor
	Get                getProjectExecutor
	List               listProjectsExecutor
	AddMember          addMemberExecutor
	RemoveMember       removeMemberExecutor
	UpdateMemberRole   updateMemberRoleExecutor
	UpdateTicketConfig updateTicketConfigExecutor
}
