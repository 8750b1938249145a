package descriptions

import "time"

// Description es el opis sędziowski de un perro en una show: una sola
// por tripla (show, dog, judge). Nace draft en version 1; cada edición
// sube la version y archiva la anterior; finalizada es inmutable.
type Description struct {
	ID string

	ShowID      string
	DogID       string
	JudgeID     string
	SecretaryID string

	DogClass  DogClass
	Grade     Grade
	Title     Title // opcional
	Placement int   // 0 = sin lokata, 1..4

	Content string // texto dictado por el juez

	Version     int
	IsFinal     bool
	FinalizedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Revision es el snapshot inmutable de una version anterior.
type Revision struct {
	ID            string
	DescriptionID string
	Version       int

	DogClass  DogClass
	Grade     Grade
	Title     Title
	Placement int
	Content   string

	CreatedAt time.Time // cuándo se archivó
}
