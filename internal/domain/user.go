package domain

import "time"

type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// CredentialKind tags how an identity was established. Federated identities are
// resolved to the same canonical User shape before any authorization decision.
type CredentialKind string

const (
	CredentialLocal     CredentialKind = "local"
	CredentialFederated CredentialKind = "federated"
)

// User represents an authenticated user of the system.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Username     string
	Email        string
	PasswordHash string
	Phone        string
	Website      string
	Credential   CredentialKind
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}
