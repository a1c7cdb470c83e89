package db

import (
	"context"

	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
)

type NonConformiteInterface interface {
	// Create logs a new non-conformité and returns its id.
	Create(ctx context.Context, param domain.NewNonConformiteParam) (string, error)

	Get(ctx context.Context, ids []string) (map[string]domain.NonConformite, error)

	// Find lists non-conformité ids, newest first, optionally by gravité.
	Find(ctx context.Context, gravite []domain.Gravite) ([]string, error)

	// AddAction links a corrective-action document to a non-conformité.
	AddAction(ctx context.Context, ncId string, documentId string) error
}
