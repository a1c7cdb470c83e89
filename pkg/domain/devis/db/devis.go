package db

import (
	"context"

	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
)

type FindQuery struct {
	UserId    *string
	SessionId *string
	Statut    []domain.DevisStatut
}

type DevisInterface interface {
	// Create registers a new devis in en_attente and returns its id.
	//
	// A second outstanding devis for the same (user, session) is
	// domain.ErrConflict: exactly one is active per pair.
	Create(ctx context.Context, param domain.NewDevisParam) (string, error)

	Get(ctx context.Context, ids []string) (map[string]domain.Devis, error)

	Find(ctx context.Context, query FindQuery) ([]string, error)

	// Decide moves an en_attente devis to valide or refuse.
	//
	// Compare-and-set on statut: deciding an already decided devis fails
	// with domain.ErrInvalidDevisDecision.
	Decide(ctx context.Context, devisId string, to domain.DevisStatut) error

	// AttachContrat links the contract document opened from this devis.
	//
	// The devis must be valide (domain.ErrDevisNotValide otherwise), and
	// only one contract can ever be attached (domain.ErrConflict).
	AttachContrat(ctx context.Context, devisId string, documentId string) error
}
