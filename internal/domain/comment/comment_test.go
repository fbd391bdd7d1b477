package comment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackr-io/trackr/internal/domain/ticket"
)

func TestExtractMentions(t *testing.T) {
	tests := []struct {
		content string
		want    []string
	}{
		{"no mentions here", []string{}},
		{"@alice can you look", []string{"alice"}},
		{"@bob @alice and @bob again", []string{"bob", "alice"}},
		{"mail me at dev@example.com", []string{"example"}},
		{"@under_score_1!", []string{"under_score_1"}},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMentions(tt.content))
		})
	}
}

func TestNewComment(t *testing.T) {
	c, err := NewComment(1, 2, "  ping @carol ", nil)
	require.NoError(t, err)

	assert.Equal(t, "ping @carol", c.Content())
	assert.Equal(t, []string{"carol"}, c.Mentions())
	assert.False(t, c.IsEdited())
	assert.Empty(t, c.EditHistory())

	_, err = NewComment(1, 2, "   ", nil)
	assert.Error(t, err)
	_, err = NewComment(0, 2, "x", nil)
	assert.Error(t, err)
	_, err = NewComment(1, 2, strings.Repeat("a", MaxContentLength+1), nil)
	assert.Error(t, err)
}

func TestEdit_PushesHistory(t *testing.T) {
	c, err := NewComment(1, 2, "first", nil)
	require.NoError(t, err)

	require.NoError(t, c.Edit("second @dan", nil))
	require.NoError(t, c.Edit("third", nil))

	history := c.EditHistory()
	require.Len(t, history, 2)
	assert.Equal(t, "first", history[0].Content)
	assert.Equal(t, "second @dan", history[1].Content)
	assert.Equal(t, "third", c.Content())
	assert.True(t, c.IsEdited())
	assert.Empty(t, c.Mentions())

	assert.Error(t, c.Edit("", nil))
	assert.Len(t, c.EditHistory(), 2)
}

func TestAttachments(t *testing.T) {
	c, err := NewComment(1, 2, "see file", nil)
	require.NoError(t, err)

	a, err := ticket.NewAttachment("shot.png", "https://files.example.com/shot.png", "image/png", 10, 2)
	require.NoError(t, err)
	require.NoError(t, c.AddAttachment(a))
	assert.Error(t, c.AddAttachment(a))

	removed, ok := c.RemoveAttachment(a.ID)
	assert.True(t, ok)
	assert.Equal(t, "shot.png", removed.Name)
	_, ok = c.RemoveAttachment(a.ID)
	assert.False(t, ok)
}
