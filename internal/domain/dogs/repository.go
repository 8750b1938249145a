package dogs

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("dog not found")
	ErrDuplicate = errors.New("microchip already registered")
)

type ListFilter struct {
	BreedID        string
	OwnerID        string
	Gender         string
	Search         string // ilike sobre name y kennel_name
	IncludeDeleted bool

	Offset int
	Limit  int
}

// Repository: Create y Update persisten perro + links de dueños como una
// sola operación atómica (transacción en Postgres, un lock en memoria).
type Repository interface {
	Create(ctx context.Context, d Dog) error
	Update(ctx context.Context, d Dog) error
	GetByID(ctx context.Context, id string) (Dog, error)
	FindByMicrochip(ctx context.Context, microchip string) (Dog, error)
	List(ctx context.Context, f ListFilter) ([]Dog, int, error)
	CountActiveByOwner(ctx context.Context, ownerID string) (int, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
