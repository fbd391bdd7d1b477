// Package comment holds ticket comments with their edit history, mentions
// and attachments.
package comment

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/shared/biztime"
)

const MaxContentLength = 10000

var mentionPattern = regexp.MustCompile(`@(\w+)`)

// ExtractMentions returns the @tokens of content in first-seen order without
// duplicates.
func ExtractMentions(content string) []string {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if !slices.Contains(out, m[1]) {
			out = append(out, m[1])
		}
	}
	return out
}

// Edit is a snapshot of content replaced by an edit.
type Edit struct {
	Content  string    `json:"content"`
	EditedAt time.Time `json:"editedAt"`
}

type Comment struct {
	id          uint
	ticketID    uint
	authorID    uint
	content     string
	attachments []ticket.Attachment
	mentions    []string
	isEdited    bool
	editHistory []Edit
	createdAt   time.Time
	updatedAt   time.Time
}

func NewComment(ticketID, authorID uint, content string, attachments []ticket.Attachment) (*Comment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	content = strings.TrimSpace(content)
	if err := validateContent(content); err != nil {
		return nil, err
	}
	if attachments == nil {
		attachments = []ticket.Attachment{}
	}

	now := biztime.NowUTC()
	return &Comment{
		ticketID:    ticketID,
		authorID:    authorID,
		content:     content,
		attachments: slices.Clone(attachments),
		mentions:    ExtractMentions(content),
		editHistory: []Edit{},
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructComment(
	id, ticketID, authorID uint,
	content string,
	attachments []ticket.Attachment,
	mentions []string,
	isEdited bool,
	editHistory []Edit,
	createdAt, updatedAt time.Time,
) (*Comment, error) {
	if id == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	if attachments == nil {
		attachments = []ticket.Attachment{}
	}
	if mentions == nil {
		mentions = []string{}
	}
	if editHistory == nil {
		editHistory = []Edit{}
	}
	return &Comment{
		id:          id,
		ticketID:    ticketID,
		authorID:    authorID,
		content:     content,
		attachments: attachments,
		mentions:    mentions,
		isEdited:    isEdited,
		editHistory: editHistory,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (c *Comment) ID() uint                         { return c.id }
func (c *Comment) TicketID() uint                   { return c.ticketID }
func (c *Comment) AuthorID() uint                   { return c.authorID }
func (c *Comment) Content() string                  { return c.content }
func (c *Comment) IsEdited() bool                   { return c.isEdited }
func (c *Comment) CreatedAt() time.Time             { return c.createdAt }
func (c *Comment) UpdatedAt() time.Time             { return c.updatedAt }
func (c *Comment) Mentions() []string               { return slices.Clone(c.mentions) }
func (c *Comment) EditHistory() []Edit              { return slices.Clone(c.editHistory) }
func (c *Comment) Attachments() []ticket.Attachment { return slices.Clone(c.attachments) }

func (c *Comment) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("comment ID cannot be zero")
	}
	c.id = id
	return nil
}

func (c *Comment) IsAuthor(userID uint) bool {
	return c.authorID == userID
}

// Edit pushes the current content to the edit history and replaces it.
// A nil attachments slice keeps the existing attachments.
func (c *Comment) Edit(content string, attachments []ticket.Attachment) error {
	content = strings.TrimSpace(content)
	if err := validateContent(content); err != nil {
		return err
	}
	now := biztime.NowUTC()
	c.editHistory = append(c.editHistory, Edit{Content: c.content, EditedAt: now})
	c.content = content
	c.mentions = ExtractMentions(content)
	c.isEdited = true
	if attachments != nil {
		c.attachments = slices.Clone(attachments)
	}
	c.updatedAt = now
	return nil
}

func (c *Comment) AddAttachment(a ticket.Attachment) error {
	if a.ID == "" {
		return fmt.Errorf("attachment ID is required")
	}
	if slices.ContainsFunc(c.attachments, func(x ticket.Attachment) bool { return x.ID == a.ID }) {
		return fmt.Errorf("attachment %s already exists", a.ID)
	}
	c.attachments = append(c.attachments, a)
	c.updatedAt = biztime.NowUTC()
	return nil
}

func (c *Comment) RemoveAttachment(attachmentID string) (ticket.Attachment, bool) {
	i := slices.IndexFunc(c.attachments, func(x ticket.Attachment) bool { return x.ID == attachmentID })
	if i < 0 {
		return ticket.Attachment{}, false
	}
	removed := c.attachments[i]
	c.attachments = slices.Delete(c.attachments, i, i+1)
	c.updatedAt = biztime.NowUTC()
	return removed, true
}

func validateContent(content string) error {
	if content == "" {
		return fmt.Errorf("comment content is required")
	}
	if len(content) > MaxContentLength {
		return fmt.Errorf("comment exceeds maximum length of %d characters", MaxContentLength)
	}
	return nil
}
