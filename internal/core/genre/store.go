package genre

import "context"

// Repository persists genres. FindByID returns soft-deleted rows too;
// visibility rules belong to the service.
type Repository interface {
	ListActive(context context.Context) ([]*Genre, error)
	FindByID(context context.Context, id int64) (*Genre, error)
	// FindByIDs returns the genres that exist among ids, in id order. Missing ids are skipped.
	FindByIDs(context context.Context, ids []int64) ([]*Genre, error)
	Create(context context.Context, genre *Genre) error
	Update(context context.Context, genre *Genre) error
	SoftDelete(context context.Context, id int64) error
}
