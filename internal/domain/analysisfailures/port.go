package analysisfailures

import "context"

// Repository port for recording failures. Writes are best-effort; callers
// ignore errors from Save.
type Repository interface {
	Save(ctx context.Context, f *Failure) error
}
