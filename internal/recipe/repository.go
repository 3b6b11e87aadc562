package recipe

import "context"

type Repository interface {
	Create(ctx context.Context, rec *Recipe) error
	GetByID(ctx context.Context, id string) (*Recipe, error)
	List(ctx context.Context, skip, limit int) ([]*Recipe, error)
	Search(ctx context.Context, query string) ([]*Recipe, error)
	Update(ctx context.Context, rec *Recipe) error
	Delete(ctx context.Context, id string) (bool, error)
}
