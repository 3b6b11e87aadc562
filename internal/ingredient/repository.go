package ingredient

import "context"

type Repository interface {
	Create(ctx context.Context, ing *Ingredient) error
	GetByID(ctx context.Context, id string) (*Ingredient, error)
	GetByName(ctx context.Context, name string) (*Ingredient, error)
	List(ctx context.Context, category string, skip, limit int) ([]*Ingredient, error)
	Update(ctx context.Context, ing *Ingredient) error
	Delete(ctx context.Context, id string) (bool, error)
}
