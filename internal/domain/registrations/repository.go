package registrations

import (
	"context"
	"errors"

	"dog-show-club/internal/domain/descriptions"
)

var (
	ErrNotFound  = errors.New("registration not found")
	ErrDuplicate = errors.New("registration already exists")
)

type Repository interface {
	// Create asigna el catalog_number y devuelve el record completo.
	Create(ctx context.Context, reg Registration) (Registration, error)

	// CreateWithDescription inserta la inscripción y la descripción en la
	// misma transacción; si falla cualquiera de las dos no queda nada.
	CreateWithDescription(ctx context.Context, reg Registration, d descriptions.Description) (Registration, error)

	GetByID(ctx context.Context, id string) (Registration, error)
	FindByShowAndDog(ctx context.Context, showID, dogID string) (Registration, error)
	ListByShow(ctx context.Context, showID string) ([]Registration, error)
	Delete(ctx context.Context, id string) error
	CountByShow(ctx context.Context, showID string) (int, error)
}
