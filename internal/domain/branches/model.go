package branches

import "time"

// Branch es un oddział del club; data de referencia read-mostly.
type Branch struct {
	ID string

	Name   string
	City   string
	Region string

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
