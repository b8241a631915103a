package llm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJoinText(t *testing.T) {
	tests := []struct {
		name   string
		blocks []ContentBlock
		want   string
	}{
		{
			name:   "empty response",
			blocks: nil,
			want:   "",
		},
		{
			name:   "single text block",
			blocks: []ContentBlock{{Type: "text", Text: "bonjour"}},
			want:   "bonjour",
		},
		{
			name: "text blocks joined by blank line",
			blocks: []ContentBlock{
				{Type: "text", Text: "Titre: ..."},
				{Type: "text", Text: "Responsabilités: ..."},
			},
			want: "Titre: ...\n\nResponsabilités: ...",
		},
		{
			name: "non-text blocks dropped silently",
			blocks: []ContentBlock{
				{Type: "text", Text: "first"},
				{Type: "tool_use", Text: "ignored"},
				{Type: "thinking", Text: "ignored"},
				{Type: "text", Text: "second"},
			},
			want: "first\n\nsecond",
		},
		{
			name:   "only non-text blocks",
			blocks: []ContentBlock{{Type: "tool_use"}, {Type: "image"}},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, JoinText(tt.blocks))
		})
	}
}
