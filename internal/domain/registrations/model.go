package registrations

import (
	"time"

	"dog-show-club/internal/domain/descriptions"
)

// Registration inscribe un perro en una show dentro de una clase.
// El catalog_number es secuencial por show y lo asigna el repo en el
// insert, para que dos altas concurrentes no se pisen el número.
type Registration struct {
	ID            string
	ShowID        string
	DogID         string
	DogClass      descriptions.DogClass
	CatalogNumber int

	CreatedAt time.Time
}
