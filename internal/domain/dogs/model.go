package dogs

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func ParseGender(s string) (Gender, bool) {
	switch Gender(s) {
	case GenderMale, GenderFemale:
		return Gender(s), true
	}
	return "", false
}

// OwnerLink une perro y dueño; exactamente uno lleva IsPrimary.
type OwnerLink struct {
	OwnerID   string
	IsPrimary bool
}

// Dog: el microchip (15 dígitos) es único entre perros no borrados.
type Dog struct {
	ID string

	Name      string
	BreedID   string
	Gender    Gender
	BirthDate time.Time
	Microchip string

	// Datos de rodowód opcionales.
	KennelClubNumber string
	KennelName       string
	FatherName       string
	MotherName       string

	Owners []OwnerLink

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

func (d Dog) IsDeleted() bool { return d.DeletedAt != nil }

func (d Dog) PrimaryOwnerID() string {
	for _, l := range d.Owners {
		if l.IsPrimary {
			return l.OwnerID
		}
	}
	return ""
}
