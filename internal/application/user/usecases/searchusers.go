package usecases

import (
	"context"
	"strings"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/user/dto"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/user"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

const searchLimit = 20

// SearchUsersCommand searches by name. A non-zero ProjectID restricts the
// result to that project's members and requires the actor to be one.
type SearchUsersCommand struct {
	ActorID   uint
	Name      string
	ProjectID uint
}

type SearchUsersUseCase struct {
	userRepo    user.Repository
	projectRepo project.Repository
	logger      logger.Interface
}

func NewSearchUsersUseCase(userRepo user.Repository, projectRepo project.Repository, logger logger.Interface) *SearchUsersUseCase {
	return &SearchUsersUseCase{userRepo: userRepo, projectRepo: projectRepo, logger: logger}
}

func (uc *SearchUsersUseCase) Execute(ctx context.Context, cmd SearchUsersCommand) ([]*dto.UserSummaryDTO, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, errors.NewValidationError("name is required")
	}

	var limitTo []uint
	if cmd.ProjectID != 0 {
		p, err := access.ProjectMember(ctx, uc.projectRepo, cmd.ProjectID, cmd.ActorID)
		if err != nil {
			return nil, err
		}
		limitTo = p.MemberIDs()
	}

	list, err := uc.userRepo.SearchByName(ctx, name, limitTo, searchLimit)
	if err != nil {
		uc.logger.Errorw("failed to search users", "name", name, "error", err)
		return nil, access.Wrap(err, "failed to search users")
	}
	return dto.ToUserSummaryDTOs(list), nil
}
