package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/common/ports"
	"github.com/trackr-io/trackr/internal/application/ticket/dto"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type AddAttachmentCommand struct {
	ActorID  uint
	TicketID uint
	Name     string
	URL      string
	Type     string
	Size     int64
}

type RemoveAttachmentCommand struct {
	ActorID      uint
	TicketID     uint
	AttachmentID string
}

type AttachmentsUseCase struct {
	ticketRepo  ticket.Repository
	historyRepo ticket.HistoryRepository
	projectRepo project.Repository
	txMgr       ports.TransactionManager
	recorder    ports.ActivityRecorder
	logger      logger.Interface
}

func NewAttachmentsUseCase(
	ticketRepo ticket.Repository,
	historyRepo ticket.HistoryRepository,
	projectRepo project.Repository,
	txMgr ports.TransactionManager,
	recorder ports.ActivityRecorder,
	logger logger.Interface,
) *AttachmentsUseCase {
	return &AttachmentsUseCase{
		ticketRepo:  ticketRepo,
		historyRepo: historyRepo,
		projectRepo: projectRepo,
		txMgr:       txMgr,
		recorder:    recorder,
		logger:      logger,
	}
}

func (uc *AttachmentsUseCase) Add(ctx context.Context, cmd AddAttachmentCommand) (*dto.AttachmentDTO, error) {
	t, _, err := loadForMember(ctx, uc.ticketRepo, uc.projectRepo, cmd.TicketID, cmd.ActorID)
	if err != nil {
		return nil, err
	}
	a, err := ticket.NewAttachment(cmd.Name, cmd.URL, cmd.Type, cmd.Size, cmd.ActorID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := t.AddAttachment(a); err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		return appendHistory(txCtx, uc.historyRepo, t, cmd.ActorID, ticket.ActionAttachmentAdded, ticket.Changes{
			ticket.FieldAttachment: {From: nil, To: a.Name},
		})
	})
	if err != nil {
		uc.logger.Errorw("failed to add ticket attachment", "ticket_id", t.ID(), "error", err)
		return nil, access.Wrap(err, "failed to add attachment")
	}

	entry := ticketEntry(t, cmd.ActorID, activity.ActionUploaded, activity.Details{
		"ticket_id": t.ID(),
		"name":      a.Name,
		"size":      a.Size,
	})
	entry.EntityType = activity.EntityAttachment
	uc.recorder.Record(ctx, entry)

	out := dto.ToAttachmentDTO(a)
	return &out, nil
}

// Remove is allowed for the uploader and project admins.
func (uc *AttachmentsUseCase) Remove(ctx context.Context, cmd RemoveAttachmentCommand) error {
	t, p, err := loadForMember(ctx, uc.ticketRepo, uc.projectRepo, cmd.TicketID, cmd.ActorID)
	if err != nil {
		return err
	}
	a, ok := t.Attachment(cmd.AttachmentID)
	if !ok {
		return errors.NewNotFoundError("attachment not found")
	}
	if a.UploadedBy != cmd.ActorID && !p.IsAdmin(cmd.ActorID) {
		return errors.NewForbiddenError("only the uploader or a project admin can remove this attachment")
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t.RemoveAttachment(a.ID)
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		return appendHistory(txCtx, uc.historyRepo, t, cmd.ActorID, ticket.ActionAttachmentRemoved, ticket.Changes{
			ticket.FieldAttachment: {From: a.Name, To: nil},
		})
	})
	if err != nil {
		uc.logger.Errorw("failed to remove ticket attachment", "ticket_id", t.ID(), "attachment_id", a.ID, "error", err)
		return access.Wrap(err, "failed to remove attachment")
	}

	uc.recorder.Record(ctx, ticketEntry(t, cmd.ActorID, activity.ActionUpdated, activity.Details{
		"action": "removed_attachment",
		"name":   a.Name,
	}))
	return nil
}
