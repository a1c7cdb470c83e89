package registrations

import (
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/pointer"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/rfctime"
)

// RegistrationSpec is the step-1 pre-registration request body.
type RegistrationSpec struct {
	Email     string  `json:"email"`
	Prenom    string  `json:"prenom"`
	Nom       string  `json:"nom"`
	Niveau    int     `json:"niveau"`
	SessionId *string `json:"sessionId,omitempty"`
}

// CompletionSpec is the step-2 request body, opening the user account.
type CompletionSpec struct {
	Password  string `json:"password"`
	Adresse   string `json:"adresse,omitempty"`
	Telephone string `json:"telephone,omitempty"`
	BirthDate string `json:"birthDate,omitempty"` // YYYY-MM-DD
}

type Detail struct {
	RegistrationId string          `json:"registrationId"`
	Email          string          `json:"email"`
	Prenom         string          `json:"prenom"`
	Nom            string          `json:"nom"`
	Niveau         int             `json:"niveau"`
	SessionId      *string         `json:"sessionId,omitempty"`
	Step           int             `json:"step"`
	CreatedAt      rfctime.RFC3339 `json:"createdAt"`
	UpdatedAt      rfctime.RFC3339 `json:"updatedAt"`
}

func (d Detail) Equal(o Detail) bool {
	return d.RegistrationId == o.RegistrationId &&
		d.Email == o.Email &&
		d.Prenom == o.Prenom &&
		d.Nom == o.Nom &&
		d.Niveau == o.Niveau &&
		pointer.SafeDeref(d.SessionId) == pointer.SafeDeref(o.SessionId) &&
		d.Step == o.Step &&
		d.CreatedAt.Equal(o.CreatedAt) &&
		d.UpdatedAt.Equal(o.UpdatedAt)
}
