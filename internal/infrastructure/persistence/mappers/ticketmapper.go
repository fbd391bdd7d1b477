package mappers

import (
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between tickets, their history and
// the persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) (*models.TicketModel, error)
	ToDomain(m *models.TicketModel) (*ticket.Ticket, error)
	HistoryToModel(h *ticket.HistoryEntry) (*models.TicketHistoryModel, error)
	HistoryToDomain(m *models.TicketHistoryModel) (*ticket.HistoryEntry, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (TicketMapperImpl) ToModel(t *ticket.Ticket) (*models.TicketModel, error) {
	labels, err := toJSON(t.Labels())
	if err != nil {
		return nil, err
	}
	watchers, err := toJSON(t.Watchers())
	if err != nil {
		return nil, err
	}
	attachments, err := toJSON(t.Attachments())
	if err != nil {
		return nil, err
	}
	return &models.TicketModel{
		ID:            t.ID(),
		ProjectID:     t.ProjectID(),
		Number:        t.Number(),
		Title:         t.Title(),
		Description:   t.Description(),
		Type:          t.Type(),
		Status:        t.Status(),
		Priority:      t.Priority(),
		ReporterID:    t.ReporterID(),
		AssigneeID:    t.AssigneeID(),
		DueDate:       t.DueDate(),
		EstimatedTime: t.EstimatedTime(),
		Labels:        labels,
		Watchers:      watchers,
		Attachments:   attachments,
		CreatedAt:     t.CreatedAt(),
		UpdatedAt:     t.UpdatedAt(),
	}, nil
}

func (TicketMapperImpl) ToDomain(m *models.TicketModel) (*ticket.Ticket, error) {
	var labels []string
	var watchers []uint
	var attachments []ticket.Attachment
	if err := fromJSON(m.Labels, &labels, "labels"); err != nil {
		return nil, err
	}
	if err := fromJSON(m.Watchers, &watchers, "watchers"); err != nil {
		return nil, err
	}
	if err := fromJSON(m.Attachments, &attachments, "attachments"); err != nil {
		return nil, err
	}
	return ticket.ReconstructTicket(
		m.ID, m.ProjectID,
		m.Number, m.Title, m.Description, m.Type, m.Status, m.Priority,
		m.ReporterID,
		m.AssigneeID,
		m.DueDate,
		m.EstimatedTime,
		labels,
		watchers,
		attachments,
		m.CreatedAt, m.UpdatedAt,
	)
}

func (TicketMapperImpl) HistoryToModel(h *ticket.HistoryEntry) (*models.TicketHistoryModel, error) {
	changes, err := toJSON(h.Changes())
	if err != nil {
		return nil, err
	}
	return &models.TicketHistoryModel{
		ID:        h.ID(),
		TicketID:  h.TicketID(),
		ActorID:   h.ActorID(),
		Action:    string(h.Action()),
		Changes:   changes,
		CreatedAt: h.CreatedAt(),
	}, nil
}

func (TicketMapperImpl) HistoryToDomain(m *models.TicketHistoryModel) (*ticket.HistoryEntry, error) {
	changes := ticket.Changes{}
	if err := fromJSON(m.Changes, &changes, "changes"); err != nil {
		return nil, err
	}
	return ticket.ReconstructHistoryEntry(m.ID, m.TicketID, m.ActorID, ticket.HistoryAction(m.Action), changes, m.CreatedAt), nil
}
