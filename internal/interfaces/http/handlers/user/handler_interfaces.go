package user

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/user/dto"
	"github.com/trackr-io/trackr/internal/application/user/usecases"
)

// Use case interfaces for Handler - enables unit testing with mocks.

type registerExecutor interface {
	Execute(ctx context.Context, cmd usecases.RegisterCommand) (*dto.UserDTO, error)
}

type loginExecutor interface {
	Execute(ctx context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error)
}

type refreshExecutor interface {
	Execute(ctx context.Context, refreshToken string) (*usecases.TokenPair, error)
}

type profileService interface {
	Get(ctx context.Context, actorID uint) (*dto.UserDTO, error)
	Update(ctx context.Context, cmd usecases.UpdateProfileCommand) (*dto.UserDTO, error)
}

type searchExecutor interface {
	Execute(ctx context.Context, cmd usecases.SearchUsersCommand) ([]*dto.UserSummaryDTO, error)
}

type changeRoleExecutor interface {
	Execute(ctx context.Context, cmd usecases.ChangeRoleCommand) (*dto.UserDTO, error)
}
