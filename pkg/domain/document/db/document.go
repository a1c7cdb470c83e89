package db

import (
	"context"

	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
)

// NewDocumentParam is the payload to create a document record.
type NewDocumentParam struct {
	Kind        domain.DocumentKind
	OwnerUserId *string
	SessionId   *string
	Fields      domain.Fields

	// present when the submitting party signed on intake (user-first kinds).
	PrimarySignature *domain.Signature
}

// FindQuery matches documents on every non-zero dimension.
type FindQuery struct {
	Kind        []domain.DocumentKind
	Status      []domain.DocumentStatus
	OwnerUserId *string
	SessionId   *string
}

type DocumentInterface interface {
	// Create inserts a new document at its workflow's initial status and
	// returns the new document id.
	Create(ctx context.Context, param NewDocumentParam) (string, error)

	// Get retrieves documents by id. Ids without a document are simply
	// omitted from the result.
	Get(ctx context.Context, ids []string) (map[string]domain.Document, error)

	// Find searches document ids matching the query, newest first.
	Find(ctx context.Context, query FindQuery) ([]string, error)

	// SetPrimarySignature attaches the submitting party's signature.
	//
	// It fails with domain.ErrConflict when a primary signature is already
	// there.
	SetPrimarySignature(ctx context.Context, documentId string, sig domain.Signature) error

	// Countersign attaches the admin signature and advances the status
	// from `from` to signed.
	//
	// The update is a compare-and-set on status: when the row's status no
	// longer equals `from` (say, another admin was faster), it fails with
	// domain.ErrInvalidStatusChanging and writes nothing.
	Countersign(ctx context.Context, documentId string, from domain.DocumentStatus, sig domain.Signature) error

	// Publish advances a signed document to published.
	//
	// Publishing an already published (or sent) document is a no-op;
	// the returned bool tells whether this call changed anything.
	Publish(ctx context.Context, documentId string) (bool, error)

	// AddUserSignature records one user's counter-signature on a published
	// admin-first document (induction, toolbox-talk).
	//
	// Signing the same document twice is a domain.ErrConflict.
	AddUserSignature(ctx context.Context, documentId string, userId string, sig domain.Signature) error

	// ListUserSignatures returns every per-user signature collected on a
	// document, oldest first.
	ListUserSignatures(ctx context.Context, documentId string) ([]domain.Signature, error)

	// ListInductions returns the published induction documents of a
	// session, each flagged with whether userId has signed it.
	ListInductions(ctx context.Context, sessionId string, userId string) ([]domain.InductionEntry, error)
}
