package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name     string
		in       string
		contains []string
		absent   []string
	}{
		{
			name:     "emphasis",
			in:       "looks **good** to me",
			contains: []string{"<strong>good</strong>"},
		},
		{
			name:   "script stripped",
			in:     "hi <script>alert(1)</script>",
			absent: []string{"<script>"},
		},
		{
			name:     "mention kept as text",
			in:       "@alice please check",
			contains: []string{"@alice please check"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render(tt.in)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}
