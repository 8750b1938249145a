package auth

// Role es el rol del usuario dentro del club.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleOrganizer Role = "organizer"
	RoleSecretary Role = "secretary"
	RoleMember    Role = "member"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleOrganizer, RoleSecretary, RoleMember:
		return Role(s), true
	}
	return "", false
}

// Claims representa la identidad extraída de la sesión.
type Claims struct {
	UserID string
	Email  string
	Role   Role
}

func (c Claims) CanManageReferenceData() bool {
	return c.Role == RoleAdmin
}

func (c Claims) CanManageShows() bool {
	return c.Role == RoleAdmin || c.Role == RoleOrganizer
}
