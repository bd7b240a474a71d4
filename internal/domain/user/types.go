package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

var roleRank = map[Role]int{
	RoleStudent:    1,
	RoleInstructor: 2,
	RoleAdmin:      3,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// AtLeast reports whether r ranks at or above min.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min] && r.IsValid()
}

// Identity is the verified caller behind a bearer token.
type Identity struct {
	UserID    string
	Email     string
	Role      Role
	FirstName string
	LastName  string
}

// CanActFor reports whether the caller may reserve on behalf of studentID.
func (i Identity) CanActFor(studentID string) bool {
	return i.UserID == studentID || i.Role.AtLeast(RoleInstructor)
}
