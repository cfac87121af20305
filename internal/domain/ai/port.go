package ai

import "context"

// Attachment is one binary media item included in a generation request.
type Attachment struct {
	Data        []byte
	ContentType string
}

// Request is a single prompt for the generative model: a system instruction,
// a user message, and optional image attachments.
type Request struct {
	System      string
	User        string
	Attachments []Attachment
}

// Generator port: one call in, text out. No retries, no streaming.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
