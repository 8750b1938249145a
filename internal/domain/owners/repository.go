package owners

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("owner not found")
	ErrDuplicate = errors.New("owner email already in use")
)

type ListFilter struct {
	Search         string // ilike sobre nombre, apellido y email
	City           string
	IncludeDeleted bool

	Offset int
	Limit  int
}

// Repository: GetByID y FindByEmail excluyen borrados; List solo si
// IncludeDeleted está apagado.
type Repository interface {
	Create(ctx context.Context, o Owner) error
	Update(ctx context.Context, o Owner) error
	GetByID(ctx context.Context, id string) (Owner, error)
	FindByEmail(ctx context.Context, email string) (Owner, error)
	List(ctx context.Context, f ListFilter) ([]Owner, int, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
