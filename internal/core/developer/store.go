package developer

import "context"

// Repository persists developers. FindByID returns soft-deleted rows too;
// visibility rules belong to the service.
type Repository interface {
	ListActive(context context.Context) ([]*Developer, error)
	FindByID(context context.Context, id int64) (*Developer, error)
	Create(context context.Context, developer *Developer) error
	Update(context context.Context, developer *Developer) error
	SoftDelete(context context.Context, id int64) error
}
