package domain

import (
	"errors"
	"fmt"
	"time"
)

// Niveau is an IRATA certification level (1 to 3).
type Niveau int

func AsNiveau(n int) (Niveau, error) {
	if n < 1 || 3 < n {
		return 0, fmt.Errorf("'%d' is not an IRATA niveau (1-3)", n)
	}
	return Niveau(n), nil
}

// a step-1 request already exists for the same (email, niveau).
//
// The caller should be told to log in instead of registering again.
var ErrAlreadyRegistered = errors.New("a registration request already exists")

// Registration is a pre-registration request, captured in two steps.
//
// Step 1 records identity and the requested course. Step 2 completes the
// profile and opens the user account.
type Registration struct {
	Id     string
	Email  string
	Prenom string
	Nom    string
	Niveau Niveau

	// requested training session, when one was picked at step 1.
	SessionId *string

	// 1 after step 1, 2 once the profile is completed.
	Step int

	CreatedAt time.Time
	UpdatedAt time.Time
}

type NewRegistrationParam struct {
	Email     string
	Prenom    string
	Nom       string
	Niveau    Niveau
	SessionId *string
}

// CompleteRegistrationParam carries step-2 profile data.
type CompleteRegistrationParam struct {
	RegistrationId string
	Adresse        string
	Telephone      string
	BirthDate      *string // YYYY-MM-DD
	PasswordHash   []byte
}
