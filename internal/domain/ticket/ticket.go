// Package ticket holds the Ticket aggregate, its append-only history and the
// ticket number scheme.
package ticket

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/trackr-io/trackr/internal/shared/biztime"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 20000
)

type Ticket struct {
	id            uint
	projectID     uint
	number        string
	title         string
	description   string
	ticketType    string
	status        string
	priority      string
	reporterID    uint
	assigneeID    *uint
	dueDate       *time.Time
	estimatedTime float64
	labels        []string
	watchers      []uint
	attachments   []Attachment
	createdAt     time.Time
	updatedAt     time.Time
}

// NewTicketParams is the creation input. Registry and membership checks
// happen before construction.
type NewTicketParams struct {
	ProjectID     uint
	ReporterID    uint
	Title         string
	Description   string
	Type          string
	Status        string
	Priority      string
	AssigneeID    *uint
	DueDate       *time.Time
	EstimatedTime float64
	Labels        []string
}

func NewTicket(p NewTicketParams) (*Ticket, error) {
	if p.ProjectID == 0 {
		return nil, fmt.Errorf("project ID is required")
	}
	if p.ReporterID == 0 {
		return nil, fmt.Errorf("reporter ID is required")
	}
	title := strings.TrimSpace(p.Title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if len(p.Description) > MaxDescriptionLength {
		return nil, fmt.Errorf("description exceeds maximum length of %d characters", MaxDescriptionLength)
	}
	if p.Type == "" || p.Status == "" || p.Priority == "" {
		return nil, fmt.Errorf("type, status and priority are required")
	}
	if p.EstimatedTime < 0 {
		return nil, fmt.Errorf("estimated time cannot be negative")
	}
	if p.AssigneeID != nil && *p.AssigneeID == 0 {
		p.AssigneeID = nil
	}

	now := biztime.NowUTC()
	return &Ticket{
		projectID:     p.ProjectID,
		title:         title,
		description:   p.Description,
		ticketType:    p.Type,
		status:        p.Status,
		priority:      p.Priority,
		reporterID:    p.ReporterID,
		assigneeID:    copyUint(p.AssigneeID),
		dueDate:       copyTime(p.DueDate),
		estimatedTime: p.EstimatedTime,
		labels:        normalizeLabels(p.Labels),
		watchers:      []uint{},
		attachments:   []Attachment{},
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructTicket(
	id, projectID uint,
	number, title, description, ticketType, status, priority string,
	reporterID uint,
	assigneeID *uint,
	dueDate *time.Time,
	estimatedTime float64,
	labels []string,
	watchers []uint,
	attachments []Attachment,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if projectID == 0 {
		return nil, fmt.Errorf("project ID is required")
	}
	if labels == nil {
		labels = []string{}
	}
	if watchers == nil {
		watchers = []uint{}
	}
	if attachments == nil {
		attachments = []Attachment{}
	}
	return &Ticket{
		id:            id,
		projectID:     projectID,
		number:        number,
		title:         title,
		description:   description,
		ticketType:    ticketType,
		status:        status,
		priority:      priority,
		reporterID:    reporterID,
		assigneeID:    assigneeID,
		dueDate:       dueDate,
		estimatedTime: estimatedTime,
		labels:        labels,
		watchers:      watchers,
		attachments:   attachments,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (t *Ticket) ID() uint                { return t.id }
func (t *Ticket) ProjectID() uint         { return t.projectID }
func (t *Ticket) Number() string          { return t.number }
func (t *Ticket) Title() string           { return t.title }
func (t *Ticket) Description() string     { return t.description }
func (t *Ticket) Type() string            { return t.ticketType }
func (t *Ticket) Status() string          { return t.status }
func (t *Ticket) Priority() string        { return t.priority }
func (t *Ticket) ReporterID() uint        { return t.reporterID }
func (t *Ticket) AssigneeID() *uint       { return copyUint(t.assigneeID) }
func (t *Ticket) DueDate() *time.Time     { return copyTime(t.dueDate) }
func (t *Ticket) EstimatedTime() float64  { return t.estimatedTime }
func (t *Ticket) CreatedAt() time.Time    { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time    { return t.updatedAt }
func (t *Ticket) Labels() []string        { return slices.Clone(t.labels) }
func (t *Ticket) Watchers() []uint        { return slices.Clone(t.watchers) }
func (t *Ticket) Attachments() []Attachment {
	return slices.Clone(t.attachments)
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) SetNumber(number string) error {
	if t.number != "" {
		return fmt.Errorf("ticket number is already set")
	}
	if number == "" {
		return fmt.Errorf("ticket number cannot be empty")
	}
	t.number = number
	return nil
}

func (t *Ticket) IsReporter(userID uint) bool {
	return t.reporterID == userID
}

func (t *Ticket) IsAssignee(userID uint) bool {
	return t.assigneeID != nil && *t.assigneeID == userID
}

// Patch is a partial update of the tracked fields. A nil pointer leaves the
// field alone. Project, reporter and number have no patch field.
type Patch struct {
	Title         *string
	Description   *string
	Type          *string
	Status        *string
	Priority      *string
	AssigneeID    *uint
	ClearAssignee bool
	DueDate       *time.Time
	ClearDueDate  bool
	EstimatedTime *float64
	Labels        *[]string
}

// Diff reports what Apply would change without touching the ticket.
func (t *Ticket) Diff(p Patch) (Changes, error) {
	changes := Changes{}

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if err := validateTitle(title); err != nil {
			return nil, err
		}
		if title != t.title {
			changes[FieldTitle] = FieldChange{From: t.title, To: title}
		}
	}
	if p.Description != nil && *p.Description != t.description {
		if len(*p.Description) > MaxDescriptionLength {
			return nil, fmt.Errorf("description exceeds maximum length of %d characters", MaxDescriptionLength)
		}
		changes[FieldDescription] = FieldChange{From: t.description, To: *p.Description}
	}
	diffString(changes, FieldType, t.ticketType, p.Type)
	diffString(changes, FieldStatus, t.status, p.Status)
	diffString(changes, FieldPriority, t.priority, p.Priority)

	switch {
	case p.ClearAssignee:
		if t.assigneeID != nil {
			changes[FieldAssignee] = FieldChange{From: *t.assigneeID, To: nil}
		}
	case p.AssigneeID != nil:
		if !t.IsAssignee(*p.AssigneeID) {
			changes[FieldAssignee] = FieldChange{From: uintValue(t.assigneeID), To: *p.AssigneeID}
		}
	}

	switch {
	case p.ClearDueDate:
		if t.dueDate != nil {
			changes[FieldDueDate] = FieldChange{From: *t.dueDate, To: nil}
		}
	case p.DueDate != nil:
		if t.dueDate == nil || !t.dueDate.Equal(*p.DueDate) {
			changes[FieldDueDate] = FieldChange{From: timeValue(t.dueDate), To: p.DueDate.UTC()}
		}
	}

	if p.EstimatedTime != nil && *p.EstimatedTime != t.estimatedTime {
		if *p.EstimatedTime < 0 {
			return nil, fmt.Errorf("estimated time cannot be negative")
		}
		changes[FieldEstimatedTime] = FieldChange{From: t.estimatedTime, To: *p.EstimatedTime}
	}
	if p.Labels != nil {
		labels := normalizeLabels(*p.Labels)
		if !slices.Equal(labels, t.labels) {
			changes[FieldLabels] = FieldChange{From: slices.Clone(t.labels), To: labels}
		}
	}
	return changes, nil
}

// Apply writes the patch and returns the diff. An empty diff leaves the
// ticket untouched.
func (t *Ticket) Apply(p Patch) (Changes, error) {
	changes, err := t.Diff(p)
	if err != nil || changes.IsEmpty() {
		return changes, err
	}

	if c, ok := changes[FieldTitle]; ok {
		t.title = c.To.(string)
	}
	if c, ok := changes[FieldDescription]; ok {
		t.description = c.To.(string)
	}
	if c, ok := changes[FieldType]; ok {
		t.ticketType = c.To.(string)
	}
	if c, ok := changes[FieldStatus]; ok {
		t.status = c.To.(string)
	}
	if c, ok := changes[FieldPriority]; ok {
		t.priority = c.To.(string)
	}
	if c, ok := changes[FieldAssignee]; ok {
		if to, set := c.To.(uint); set {
			t.assigneeID = &to
		} else {
			t.assigneeID = nil
		}
	}
	if c, ok := changes[FieldDueDate]; ok {
		if to, set := c.To.(time.Time); set {
			t.dueDate = &to
		} else {
			t.dueDate = nil
		}
	}
	if c, ok := changes[FieldEstimatedTime]; ok {
		t.estimatedTime = c.To.(float64)
	}
	if c, ok := changes[FieldLabels]; ok {
		t.labels = c.To.([]string)
	}
	t.touch()
	return changes, nil
}

// Assign sets or clears the assignee. A new assignee also becomes a watcher.
func (t *Ticket) Assign(assigneeID *uint) (FieldChange, bool) {
	if assigneeID != nil && *assigneeID == 0 {
		assigneeID = nil
	}
	if assigneeID == nil {
		if t.assigneeID == nil {
			return FieldChange{}, false
		}
		change := FieldChange{From: *t.assigneeID, To: nil}
		t.assigneeID = nil
		t.touch()
		return change, true
	}

	t.AddWatcher(*assigneeID)
	if t.IsAssignee(*assigneeID) {
		return FieldChange{}, false
	}
	change := FieldChange{From: uintValue(t.assigneeID), To: *assigneeID}
	to := *assigneeID
	t.assigneeID = &to
	t.touch()
	return change, true
}

// TransitionStatus moves to status. Moving to the current status is a no-op.
func (t *Ticket) TransitionStatus(status string) (FieldChange, bool) {
	if status == "" || status == t.status {
		return FieldChange{}, false
	}
	change := FieldChange{From: t.status, To: status}
	t.status = status
	t.touch()
	return change, true
}

func (t *Ticket) IsWatcher(userID uint) bool {
	return slices.Contains(t.watchers, userID)
}

// AddWatcher reports whether the watcher set changed.
func (t *Ticket) AddWatcher(userID uint) bool {
	if userID == 0 || t.IsWatcher(userID) {
		return false
	}
	t.watchers = append(t.watchers, userID)
	t.touch()
	return true
}

// RemoveWatcher reports whether the watcher set changed.
func (t *Ticket) RemoveWatcher(userID uint) bool {
	i := slices.Index(t.watchers, userID)
	if i < 0 {
		return false
	}
	t.watchers = slices.Delete(t.watchers, i, i+1)
	t.touch()
	return true
}

func (t *Ticket) AddAttachment(a Attachment) error {
	if a.ID == "" {
		return fmt.Errorf("attachment ID is required")
	}
	if t.findAttachment(a.ID) >= 0 {
		return fmt.Errorf("attachment %s already exists", a.ID)
	}
	t.attachments = append(t.attachments, a)
	t.touch()
	return nil
}

func (t *Ticket) Attachment(attachmentID string) (Attachment, bool) {
	if i := t.findAttachment(attachmentID); i >= 0 {
		return t.attachments[i], true
	}
	return Attachment{}, false
}

func (t *Ticket) RemoveAttachment(attachmentID string) (Attachment, bool) {
	i := t.findAttachment(attachmentID)
	if i < 0 {
		return Attachment{}, false
	}
	removed := t.attachments[i]
	t.attachments = slices.Delete(t.attachments, i, i+1)
	t.touch()
	return removed, true
}

func (t *Ticket) findAttachment(attachmentID string) int {
	return slices.IndexFunc(t.attachments, func(a Attachment) bool { return a.ID == attachmentID })
}

func (t *Ticket) touch() {
	t.updatedAt = biztime.NowUTC()
}

func validateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("title exceeds maximum length of %d characters", MaxTitleLength)
	}
	return nil
}

func diffString(changes Changes, field, current string, next *string) {
	if next != nil && *next != current {
		changes[field] = FieldChange{From: current, To: *next}
	}
}

func normalizeLabels(in []string) []string {
	out := make([]string, 0, len(in))
	for _, l := range in {
		l = strings.TrimSpace(l)
		if l != "" && !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out
}

func copyUint(v *uint) *uint {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := v.UTC()
	return &c
}

func uintValue(v *uint) any {
	if v == nil {
		return nil
	}
	return *v
}

func timeValue(v *time.Time) any {
	if v == nil {
		return nil
	}
	return *v
}
