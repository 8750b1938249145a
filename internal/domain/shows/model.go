package shows

import "time"

type Status string

const (
	StatusDraft      Status = "draft"
	StatusOpen       Status = "open_for_registration"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusDraft, StatusOpen, StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// transitions: a qué estados se puede pasar desde cada uno.
// cancelled es alcanzable desde cualquier estado no terminal.
var transitions = map[Status][]Status{
	StatusDraft:      {StatusOpen, StatusCancelled},
	StatusOpen:       {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, t := range transitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// AcceptsRegistrations: solo mientras la inscripción está abierta.
func (s Status) AcceptsRegistrations() bool { return s == StatusOpen }

// DescriptionsEditable: las opisy se escriben durante la inscripción
// y durante el ring; nunca en shows terminadas o canceladas.
func (s Status) DescriptionsEditable() bool {
	return s == StatusOpen || s == StatusInProgress
}

type Show struct {
	ID string

	Name        string
	ShowDate    time.Time
	Location    string
	BranchID    string // opcional
	Description string

	Status Status

	// Derivado del conteo de registrations, no se persiste.
	RegisteredDogs int

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Assignment habilita a un secretario a escribir descriptions para una
// raza concreta dentro de una show. Tripla única.
type Assignment struct {
	ID              string
	ShowID          string
	SecretaryUserID string
	BreedID         string

	CreatedAt time.Time
}
