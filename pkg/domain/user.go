package domain

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func AsRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleUser:
		return r, nil
	default:
		return "", fmt.Errorf("'%s' is not a Role", s)
	}
}

func (r Role) String() string {
	return string(r)
}

type User struct {
	Id     string
	Email  string
	Prenom string
	Nom    string
	Role   Role

	// bcrypt hash. Never serialized outward.
	PasswordHash []byte

	CreatedAt time.Time
}

// NewUserParam is the payload to create a user account (registration step 2).
type NewUserParam struct {
	Email        string
	Prenom       string
	Nom          string
	Adresse      string
	Telephone    string
	BirthDate    *string // YYYY-MM-DD
	PasswordHash []byte
}
