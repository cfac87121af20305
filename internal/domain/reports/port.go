package reports

import "context"

// Repository port (interface untuk persistence). Every method takes the owner
// id and must scope its query to it; a caller can never reach another owner's
// rows through this interface.
type Repository interface {
	Save(ctx context.Context, r *Report) error
	ListByOwner(ctx context.Context, owner string) ([]*Summary, error)
	Get(ctx context.Context, owner string, id ReportID) (*Report, error)
}
