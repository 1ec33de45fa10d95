package user

const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

// Identity is the authenticated operator returned by login. It lives only
// in memory; reloads keep the token but lose the identity.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Account is one admin user row on the users page.
type Account struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func Roles() []string {
	return []string{RoleAdmin, RoleModerator}
}
