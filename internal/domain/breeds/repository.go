package breeds

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("breed not found")
	ErrDuplicate = errors.New("breed already exists")
)

// ListFilter: punteros nil = no filtrar por ese campo.
type ListFilter struct {
	FCIGroup *int
	IsActive *bool
	Search   string // ilike sobre name_pl y name_en

	Offset int
	Limit  int
}

type Repository interface {
	Create(ctx context.Context, b Breed) error
	Update(ctx context.Context, b Breed) error
	GetByID(ctx context.Context, id string) (Breed, error)
	// List devuelve la página y el total sin paginar del filtro.
	List(ctx context.Context, f ListFilter) ([]Breed, int, error)
}
