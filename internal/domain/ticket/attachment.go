package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/trackr-io/trackr/internal/shared/biztime"
	"github.com/trackr-io/trackr/internal/shared/id"
)

// Attachment is file metadata only; the bytes live elsewhere.
type Attachment struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	UploadedBy uint      `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// NewAttachment validates the metadata and assigns a fresh ID.
func NewAttachment(name, url, mimeType string, size int64, uploadedBy uint) (Attachment, error) {
	name = strings.TrimSpace(name)
	url = strings.TrimSpace(url)
	if name == "" {
		return Attachment{}, fmt.Errorf("attachment name is required")
	}
	if url == "" {
		return Attachment{}, fmt.Errorf("attachment url is required")
	}
	if size < 0 {
		return Attachment{}, fmt.Errorf("attachment size cannot be negative")
	}
	if uploadedBy == 0 {
		return Attachment{}, fmt.Errorf("uploader is required")
	}
	attID, err := id.NewAttachmentID()
	if err != nil {
		return Attachment{}, err
	}
	return Attachment{
		ID:         attID,
		Name:       name,
		URL:        url,
		Type:       mimeType,
		Size:       size,
		UploadedBy: uploadedBy,
		UploadedAt: biztime.NowUTC(),
	}, nil
}
