package ai

import "errors"

// ErrGenerationUnavailable indicates the AI provider is down or returned a
// quota/limit error (HTTP 429/5xx). Callers may retry later.
var ErrGenerationUnavailable = errors.New("generation service unavailable")

// ErrGenerationFailed indicates any other generation fault (bad request,
// empty response, decode failure). Not caller-retriable.
var ErrGenerationFailed = errors.New("generation failed")
