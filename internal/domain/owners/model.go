package owners

import "time"

// Owner es el dueño (właściciel) de uno o más perros.
// Soft-delete: DeletedAt != nil => tombstone, nunca se purga.
type Owner struct {
	ID string

	FirstName string
	LastName  string
	Email     string // único entre no borrados, siempre lowercase
	Phone     string

	Street     string
	City       string
	PostalCode string
	Country    string

	// El consentimiento RODO/GDPR es condición de alta; el timestamp
	// lo estampa el server, no el cliente.
	GDPRConsent   bool
	GDPRConsentAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

func (o Owner) IsDeleted() bool { return o.DeletedAt != nil }
