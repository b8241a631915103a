// Package llm wraps the external text-generation provider behind a small
// content-block interface so handlers never touch the vendor SDK directly.
package llm

import "context"

// ContentBlock is one unit of a provider response. Only blocks with
// Type "text" carry generated output; other block kinds (tool use,
// thinking, ...) are ignored by callers.
type ContentBlock struct {
	Type string
	Text string
}

type Client interface {
	Complete(ctx context.Context, system, user string, maxTokens int) ([]ContentBlock, error)
}

// JoinText concatenates the text blocks of a response in order, separated
// by a blank line. Non-text blocks contribute nothing.
func JoinText(blocks []ContentBlock) string {
	out := ""
	for _, b := range blocks {
		if b.Type != "text" {
			continue
		}
		if out != "" {
			out += "\n\n"
		}
		out += b.Text
	}
	return out
}
