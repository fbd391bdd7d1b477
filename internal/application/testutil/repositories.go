// Package testutil provides in-memory repositories for use case tests.
package testutil

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/comment"
	"github.com/trackr-io/trackr/internal/domain/notification"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/team"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/domain/user"
	"github.com/trackr-io/trackr/internal/shared/query"
)

func paginate[T any](items []T, page query.PageFilter) []T {
	page = page.Normalize()
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + page.Limit()
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TxManager runs fn directly. Fail makes every call return the error
// without running fn.
type TxManager struct {
	Fail  error
	Calls int
}

func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	if m.Fail != nil {
		return m.Fail
	}
	return fn(ctx)
}

// ProjectRepository is an in-memory project.Repository.
type ProjectRepository struct {
	mu       sync.RWMutex
	projects map[uint]*project.Project
	nextID   uint

	CreateErr error
	UpdateErr error
}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{projects: make(map[uint]*project.Project)}
}

func (m *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if p.ID() == 0 {
		m.nextID++
		if err := p.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.projects[p.ID()] = p
	return nil
}

func (m *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.projects[p.ID()] = p
	return nil
}

func (m *ProjectRepository) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.projects, id)
	return nil
}

func (m *ProjectRepository) GetByID(ctx context.Context, id uint) (*project.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.projects[id], nil
}

func (m *ProjectRepository) KeyExists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.projects {
		if p.Key() == key {
			return true, nil
		}
	}
	return false, nil
}

func (m *ProjectRepository) visible(v project.VisibilityQuery) []*project.Project {
	var out []*project.Project
	for _, p := range m.projects {
		if v.All || p.IsMember(v.UserID) || (v.IncludeOwned && p.IsOwner(v.UserID)) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() > out[j].ID() })
	return out
}

func (m *ProjectRepository) List(ctx context.Context, f project.ListFilter) ([]*project.Project, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*project.Project
	for _, p := range m.visible(f.Visibility) {
		if f.Status != nil && p.Status() != *f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name()), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, p)
	}
	return paginate(out, f.Page), int64(len(out)), nil
}

func (m *ProjectRepository) VisibleIDs(ctx context.Context, v project.VisibilityQuery) ([]uint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []uint
	for _, p := range m.visible(v) {
		ids = append(ids, p.ID())
	}
	return ids, nil
}

func (m *ProjectRepository) ShareMembership(ctx context.Context, a, b uint) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.projects {
		if p.IsMember(a) && p.IsMember(b) {
			return true, nil
		}
	}
	return false, nil
}

// TeamRepository is an in-memory team.Repository.
type TeamRepository struct {
	mu     sync.RWMutex
	teams  map[uint]*team.Team
	nextID uint
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{teams: make(map[uint]*team.Team)}
}

func (m *TeamRepository) Create(ctx context.Context, t *team.Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID() == 0 {
		m.nextID++
		if err := t.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.teams[t.ID()] = t
	return nil
}

func (m *TeamRepository) Update(ctx context.Context, t *team.Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teams[t.ID()] = t
	return nil
}

func (m *TeamRepository) GetByID(ctx context.Context, id uint) (*team.Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.teams[id], nil
}

func (m *TeamRepository) ListForMember(ctx context.Context, userID uint, page query.PageFilter) ([]*team.Team, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*team.Team
	for _, t := range m.teams {
		if t.IsMember(userID) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() > out[j].ID() })
	return paginate(out, page), int64(len(out)), nil
}

func (m *TeamRepository) ShareMembership(ctx context.Context, a, b uint) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.teams {
		if t.IsMember(a) && t.IsMember(b) {
			return true, nil
		}
	}
	return false, nil
}

// TicketRepository is an in-memory ticket.Repository.
type TicketRepository struct {
	mu      sync.RWMutex
	tickets map[uint]*ticket.Ticket
	nextID  uint

	CreateErr error
	UpdateErr error
}

func NewTicketRepository() *TicketRepository {
	return &TicketRepository{tickets: make(map[uint]*ticket.Ticket)}
}

func (m *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if t.ID() == 0 {
		m.nextID++
		if err := t.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.tickets[t.ID()] = t
	return nil
}

func (m *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.tickets[t.ID()] = t
	return nil
}

func (m *TicketRepository) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tickets, id)
	return nil
}

func (m *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tickets[id], nil
}

func (m *TicketRepository) List(ctx context.Context, f ticket.ListFilter) ([]*ticket.Ticket, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*ticket.Ticket
	for _, t := range m.tickets {
		if f.ProjectID != 0 && t.ProjectID() != f.ProjectID {
			continue
		}
		if f.ProjectID == 0 && !slices.Contains(f.ProjectIDs, t.ProjectID()) {
			continue
		}
		if f.Status != "" && t.Status() != f.Status {
			continue
		}
		if f.Priority != "" && t.Priority() != f.Priority {
			continue
		}
		if f.Type != "" && t.Type() != f.Type {
			continue
		}
		if f.Unassigned && t.AssigneeID() != nil {
			continue
		}
		if f.AssigneeID != nil && !t.IsAssignee(*f.AssigneeID) {
			continue
		}
		if f.ReporterID != nil && t.ReporterID() != *f.ReporterID {
			continue
		}
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(t.Title()), s) &&
				!strings.Contains(strings.ToLower(t.Description()), s) &&
				!strings.Contains(strings.ToLower(t.Number()), s) {
				continue
			}
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() > out[j].ID() })
	return paginate(out, f.Page), int64(len(out)), nil
}

func (m *TicketRepository) IDsByProject(ctx context.Context, projectID uint) ([]uint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []uint
	for _, t := range m.tickets {
		if t.ProjectID() == projectID {
			ids = append(ids, t.ID())
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (m *TicketRepository) DeleteByProject(ctx context.Context, projectID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.tickets {
		if t.ProjectID() == projectID {
			delete(m.tickets, id)
		}
	}
	return nil
}

func (m *TicketRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tickets)
}

// HistoryRepository is an in-memory ticket.HistoryRepository.
type HistoryRepository struct {
	mu      sync.RWMutex
	entries []*ticket.HistoryEntry
	nextID  uint

	AppendErr error
}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

func (m *HistoryRepository) Append(ctx context.Context, e *ticket.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.nextID++
	e.SetID(m.nextID)
	m.entries = append(m.entries, e)
	return nil
}

func (m *HistoryRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.HistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*ticket.HistoryEntry
	for _, e := range m.entries {
		if e.TicketID() == ticketID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *HistoryRepository) DeleteByTicket(ctx context.Context, ticketIDs ...uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = slices.DeleteFunc(m.entries, func(e *ticket.HistoryEntry) bool {
		return slices.Contains(ticketIDs, e.TicketID())
	})
	return nil
}

func (m *HistoryRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// CommentRepository is an in-memory comment.Repository.
type CommentRepository struct {
	mu       sync.RWMutex
	comments map[uint]*comment.Comment
	nextID   uint
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[uint]*comment.Comment)}
}

func (m *CommentRepository) Create(ctx context.Context, c *comment.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := c.SetID(m.nextID); err != nil {
		return err
	}
	m.comments[c.ID()] = c
	return nil
}

func (m *CommentRepository) Update(ctx context.Context, c *comment.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comments[c.ID()] = c
	return nil
}

func (m *CommentRepository) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.comments, id)
	return nil
}

func (m *CommentRepository) GetByID(ctx context.Context, id uint) (*comment.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.comments[id], nil
}

func (m *CommentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*comment.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*comment.Comment
	for _, c := range m.comments {
		if c.TicketID() == ticketID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (m *CommentRepository) DeleteByTicket(ctx context.Context, ticketIDs ...uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.comments {
		if slices.Contains(ticketIDs, c.TicketID()) {
			delete(m.comments, id)
		}
	}
	return nil
}

func (m *CommentRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.comments)
}

// ActivityRepository is an in-memory activity.Repository.
type ActivityRepository struct {
	mu      sync.RWMutex
	entries []*activity.Activity

	CreateErr error
}

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{}
}

func (m *ActivityRepository) Create(ctx context.Context, a *activity.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	a.SetID(uint(len(m.entries) + 1))
	m.entries = append(m.entries, a)
	return nil
}

func (m *ActivityRepository) List(ctx context.Context, f activity.Filter) ([]*activity.Activity, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*activity.Activity
	for i := len(m.entries) - 1; i >= 0; i-- {
		a := m.entries[i]
		if f.ActorID != 0 && a.ActorID() != f.ActorID {
			continue
		}
		if f.ProjectID != 0 && (a.ProjectID() == nil || *a.ProjectID() != f.ProjectID) {
			continue
		}
		if f.TeamID != 0 && (a.TeamID() == nil || *a.TeamID() != f.TeamID) {
			continue
		}
		if f.EntityType != "" && a.EntityType() != f.EntityType {
			continue
		}
		if f.EntityID != 0 && a.EntityID() != f.EntityID {
			continue
		}
		out = append(out, a)
	}
	return paginate(out, f.Page), int64(len(out)), nil
}

// All returns every entry in insertion order.
func (m *ActivityRepository) All() []*activity.Activity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.entries)
}

// NotificationRepository is an in-memory notification.Repository.
type NotificationRepository struct {
	mu     sync.RWMutex
	items  map[uint]*notification.Notification
	nextID uint

	// FailFor makes Create fail for these recipients.
	FailFor map[uint]error
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{items: make(map[uint]*notification.Notification)}
}

func (m *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.FailFor[n.RecipientID()]; ok {
		return err
	}
	m.nextID++
	n.SetID(m.nextID)
	m.items[n.ID()] = n
	return nil
}

func (m *NotificationRepository) GetByID(ctx context.Context, id uint) (*notification.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items[id], nil
}

func (m *NotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[n.ID()] = n
	return nil
}

func (m *NotificationRepository) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *NotificationRepository) forRecipient(recipientID uint) []*notification.Notification {
	var out []*notification.Notification
	for _, n := range m.items {
		if n.RecipientID() == recipientID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() > out[j].ID() })
	return out
}

func (m *NotificationRepository) ListByRecipient(ctx context.Context, recipientID uint, unreadOnly bool, page query.PageFilter) ([]*notification.Notification, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*notification.Notification
	for _, n := range m.forRecipient(recipientID) {
		if unreadOnly && n.IsRead() {
			continue
		}
		out = append(out, n)
	}
	return paginate(out, page), int64(len(out)), nil
}

func (m *NotificationRepository) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, n := range m.forRecipient(recipientID) {
		if !n.IsRead() {
			count++
		}
	}
	return count, nil
}

func (m *NotificationRepository) MarkAllRead(ctx context.Context, recipientID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, n := range m.forRecipient(recipientID) {
		if n.MarkRead() {
			count++
		}
	}
	return count, nil
}

func (m *NotificationRepository) DeleteAllForRecipient(ctx context.Context, recipientID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, n := range m.forRecipient(recipientID) {
		delete(m.items, n.ID())
		count++
	}
	return count, nil
}

// For returns the notifications of one recipient, newest first.
func (m *NotificationRepository) For(recipientID uint) []*notification.Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.forRecipient(recipientID)
}

func (m *NotificationRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// UserRepository is an in-memory user.Repository.
type UserRepository struct {
	mu     sync.RWMutex
	users  map[uint]*user.User
	nextID uint
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uint]*user.User)}
}

func (m *UserRepository) Create(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	u.SetID(m.nextID)
	m.users[u.ID()] = u
	return nil
}

func (m *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[id], nil
}

func (m *UserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*user.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email().String() == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *UserRepository) Update(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID()] = u
	return nil
}

func (m *UserRepository) Exists(ctx context.Context, id uint) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.users[id]
	return ok, nil
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := m.GetByEmail(ctx, email)
	return u != nil, nil
}

func (m *UserRepository) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.users)), nil
}

func (m *UserRepository) SearchByName(ctx context.Context, name string, limitTo []uint, limit int) ([]*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*user.User
	for _, u := range m.users {
		if !strings.Contains(strings.ToLower(u.Name()), strings.ToLower(name)) {
			continue
		}
		if len(limitTo) > 0 && !slices.Contains(limitTo, u.ID()) {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SequenceCounter is an in-memory ticket.SequenceCounter.
type SequenceCounter struct {
	mu     sync.Mutex
	values map[string]int64
}

func NewSequenceCounter() *SequenceCounter {
	return &SequenceCounter{values: make(map[string]int64)}
}

func (m *SequenceCounter) Increment(ctx context.Context, scope string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[scope]++
	return m.values[scope], nil
}
