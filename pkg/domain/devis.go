package domain

import (
	"errors"
	"fmt"
	"time"
)

// DevisStatut is the decision state of a quotation.
//
// Like DocumentStatus it only moves forward: a decided devis never comes
// back to en_attente.
type DevisStatut string

const (
	DevisEnAttente DevisStatut = "en_attente"
	DevisValide    DevisStatut = "valide"
	DevisRefuse    DevisStatut = "refuse"
)

func AsDevisStatut(s string) (DevisStatut, error) {
	switch st := DevisStatut(s); st {
	case DevisEnAttente, DevisValide, DevisRefuse:
		return st, nil
	default:
		return "", fmt.Errorf("'%s' is not a DevisStatut", s)
	}
}

func (s DevisStatut) String() string {
	return string(s)
}

var ErrInvalidDevisDecision = errors.New("cannot decide devis")

func NewErrInvalidDevisDecision(from, to DevisStatut) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidDevisDecision, from, to)
}

// opening a contract requires the devis to be valide.
var ErrDevisNotValide = errors.New("devis is not validated")

// Devis is a price quotation for a training session.
//
// At most one devis per (user, session) is outstanding at a time; the
// repository enforces it with a partial unique index.
type Devis struct {
	Id         string
	UserId     string
	SessionId  string
	ClientName string

	// price in euro cents. Amounts are never floats.
	MontantCents int64

	Statut DevisStatut

	// contract document opened from this devis, once validated.
	ContratDocumentId *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type NewDevisParam struct {
	UserId       string
	SessionId    string
	ClientName   string
	MontantCents int64
}
