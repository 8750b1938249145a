package breeds

import "time"

// Breed es data de referencia FCI: se consulta mucho, se muta casi nunca.
type Breed struct {
	ID string

	NamePL string
	NameEN string

	// Grupo FCI 1..10.
	FCIGroup  int
	FCINumber int

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
