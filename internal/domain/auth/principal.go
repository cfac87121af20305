package auth

import "context"

// Principal is the authenticated identity of one request, derived from a
// verified bearer credential. It lives for the duration of the request only.
type Principal struct {
	ID        string
	Anonymous bool
}

// Verifier port (interface for the identity provider)
type Verifier interface {
	Verify(ctx context.Context, token string) (Principal, error)
}
