package users

import (
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/rfctime"
)

// LoginSpec is the request body of POST /api/auth/login.
type LoginSpec struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries the bearer token of an opened session.
type TokenResponse struct {
	Token string `json:"token"`
	User  Detail `json:"user"`
}

type Detail struct {
	UserId    string          `json:"userId"`
	Email     string          `json:"email"`
	Prenom    string          `json:"prenom"`
	Nom       string          `json:"nom"`
	Role      string          `json:"role"`
	CreatedAt rfctime.RFC3339 `json:"createdAt"`
}

func (d Detail) Equal(o Detail) bool {
	return d.UserId == o.UserId &&
		d.Email == o.Email &&
		d.Prenom == o.Prenom &&
		d.Nom == o.Nom &&
		d.Role == o.Role &&
		d.CreatedAt.Equal(o.CreatedAt)
}
