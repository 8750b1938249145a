package judges

import "time"

// Judge: sędzia con licencia del club. FCIGroups son los grupos
// que está habilitado a juzgar.
type Judge struct {
	ID string

	FirstName     string
	LastName      string
	LicenseNumber string
	Country       string

	FCIGroups []int

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (j Judge) MayJudgeGroup(group int) bool {
	for _, g := range j.FCIGroups {
		if g == group {
			return true
		}
	}
	return false
}
