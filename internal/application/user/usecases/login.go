package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/common/ports"
	"github.com/trackr-io/trackr/internal/application/user/dto"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/user"
	vo "github.com/trackr-io/trackr/internal/domain/user/valueobjects"
	"github.com/trackr-io/trackr/internal/shared/authorization"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenService issues and refreshes signed access tokens.
type TokenService interface {
	Generate(userID uint, role authorization.UserRole) (*TokenPair, error)
	Refresh(refreshToken string) (*TokenPair, error)
}

type LoginCommand struct {
	Email     string
	Password  string
	IPAddress string
}

type LoginResult struct {
	User   *dto.UserDTO
	Tokens *TokenPair
}

type LoginUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	tokens   TokenService
	recorder ports.ActivityRecorder
	logger   logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	tokens TokenService,
	recorder ports.ActivityRecorder,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		recorder: recorder,
		logger:   logger,
	}
}

func invalidCredentials() error {
	return errors.NewUnauthorizedError("invalid email or password")
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, invalidCredentials()
	}
	u, err := uc.userRepo.GetByEmail(ctx, email.String())
	if err != nil && !errors.IsNotFoundError(err) {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, access.Wrap(err, "failed to log in")
	}
	if u == nil {
		return nil, invalidCredentials()
	}
	if err := uc.hasher.Verify(cmd.Password, u.PasswordHash()); err != nil {
		uc.logger.Warnw("failed login attempt", "user_id", u.ID(), "ip", cmd.IPAddress)
		return nil, invalidCredentials()
	}

	pair, err := uc.tokens.Generate(u.ID(), u.Role())
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to log in")
	}

	u.RecordLogin()
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Warnw("failed to record last login", "user_id", u.ID(), "error", err)
	}

	uc.recorder.Record(ctx, activity.Entry{
		ActorID:    u.ID(),
		Action:     activity.ActionLoggedIn,
		EntityType: activity.EntityUser,
		EntityID:   u.ID(),
		Details:    activity.Details{"ip": cmd.IPAddress},
	})

	uc.logger.Infow("user logged in", "user_id", u.ID())
	return &LoginResult{User: dto.ToUserDTO(u), Tokens: pair}, nil
}

type RefreshTokenUseCase struct {
	tokens TokenService
	logger logger.Interface
}

func NewRefreshTokenUseCase(tokens TokenService, logger logger.Interface) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{tokens: tokens, logger: logger}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*TokenPair, error) {
	pair, err := uc.tokens.Refresh(refreshToken)
	if err != nil {
		uc.logger.Warnw("refresh token rejected", "error", err)
		return nil, errors.NewUnauthorizedError("invalid or expired refresh token")
	}
	return pair, nil
}
