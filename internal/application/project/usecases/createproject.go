package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/common/ports"
	"github.com/trackr-io/trackr/internal/application/project/dto"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/notification"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/team"
	"github.com/trackr-io/trackr/internal/shared/authorization"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

const maxKeyAttempts = 100

type CreateProjectCommand struct {
	ActorID          uint
	ActorRole        authorization.UserRole
	Name             string
	Description      string
	Key              string
	TeamID           *uint
	Category         string
	StartDate        *time.Time
	EndDate          *time.Time
	TicketTypes      []dto.ConfigEntryDTO
	TicketStatuses   []dto.ConfigEntryDTO
	TicketPriorities []dto.ConfigEntryDTO
}

type CreateProjectUseCase struct {
	projectRepo project.Repository
	teamRepo    team.Repository
	enforcer    ports.PolicyEnforcer
	recorder    ports.ActivityRecorder
	notifier    ports.Notifier
	logger      logger.Interface
}

func NewCreateProjectUseCase(
	projectRepo project.Repository,
	teamRepo team.Repository,
	enforcer ports.PolicyEnforcer,
	recorder ports.ActivityRecorder,
	notifier ports.Notifier,
	logger logger.Interface,
) *CreateProjectUseCase {
	return &CreateProjectUseCase{
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
		enforcer:    enforcer,
		recorder:    recorder,
		notifier:    notifier,
		logger:      logger,
	}
}

func (uc *CreateProjectUseCase) Execute(ctx context.Context, cmd CreateProjectCommand) (*dto.ProjectDTO, error) {
	uc.logger.Infow("executing create project use case", "name", cmd.Name, "actor_id", cmd.ActorID)

	allowed, err := uc.enforcer.Enforce(cmd.ActorRole.String(), ports.ResourceProject, ports.ActionCreate)
	if err != nil {
		uc.logger.Errorw("failed to evaluate project create policy", "role", cmd.ActorRole, "error", err)
		return nil, errors.NewInternalError("failed to check permissions")
	}
	if !allowed {
		return nil, errors.NewForbiddenError("only admins and developers can create projects")
	}

	var tm *team.Team
	if cmd.TeamID != nil && *cmd.TeamID != 0 {
		tm, err = access.TeamMember(ctx, uc.teamRepo, *cmd.TeamID, cmd.ActorID)
		if err != nil {
			return nil, err
		}
	} else {
		cmd.TeamID = nil
	}

	key, err := uc.resolveKey(ctx, cmd.Key, cmd.Name)
	if err != nil {
		return nil, err
	}

	p, err := project.NewProject(project.NewProjectParams{
		Name:             cmd.Name,
		Description:      cmd.Description,
		Key:              key,
		OwnerID:          cmd.ActorID,
		TeamID:           cmd.TeamID,
		Category:         project.Category(cmd.Category),
		StartDate:        cmd.StartDate,
		EndDate:          cmd.EndDate,
		TicketTypes:      dto.FromConfigEntryDTOs(cmd.TicketTypes),
		TicketStatuses:   dto.FromConfigEntryDTOs(cmd.TicketStatuses),
		TicketPriorities: dto.FromConfigEntryDTOs(cmd.TicketPriorities),
	})
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.projectRepo.Create(ctx, p); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("project key already exists", key)
		}
		uc.logger.Errorw("failed to save project", "key", key, "error", err)
		return nil, access.Wrap(err, "failed to create project")
	}

	pid := p.ID()
	uc.recorder.Record(ctx, activity.Entry{
		ActorID:    cmd.ActorID,
		Action:     activity.ActionCreated,
		EntityType: activity.EntityProject,
		EntityID:   pid,
		ProjectID:  &pid,
		TeamID:     cmd.TeamID,
		Details:    activity.Details{"name": p.Name(), "key": p.Key()},
	})

	if tm != nil {
		uc.notifier.Dispatch(ctx, notification.Message{
			SenderID:   cmd.ActorID,
			Type:       notification.TypeProjectUpdate,
			Title:      "New Project",
			Body:       fmt.Sprintf("Project %s was created in team %s", p.Name(), tm.Name()),
			EntityType: notification.EntityProject,
			EntityID:   pid,
			Link:       fmt.Sprintf("/projects/%d", pid),
		}, tm.MemberIDs()...)
	}

	uc.logger.Infow("project created successfully", "project_id", pid, "key", p.Key())
	return dto.ToProjectDTO(p), nil
}

// resolveKey honours an explicit key, failing on collision, or derives one
// from the name and appends a numeric suffix until it is free.
func (uc *CreateProjectUseCase) resolveKey(ctx context.Context, explicit, name string) (string, error) {
	if explicit != "" {
		key, err := project.NormalizeKey(explicit)
		if err != nil {
			return "", errors.NewValidationError(err.Error())
		}
		exists, err := uc.projectRepo.KeyExists(ctx, key)
		if err != nil {
			return "", access.Wrap(err, "failed to check project key")
		}
		if exists {
			return "", errors.NewConflictError("project key already exists", key)
		}
		return key, nil
	}

	base := project.DeriveKey(name)
	for attempt := 1; attempt <= maxKeyAttempts; attempt++ {
		candidate := project.KeyCandidate(base, attempt)
		exists, err := uc.projectRepo.KeyExists(ctx, candidate)
		if err != nil {
			return "", access.Wrap(err, "failed to check project key")
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", errors.NewConflictError("could not derive a unique project key", base)
}
