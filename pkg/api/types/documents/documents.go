package documents

import (
	"bytes"
	"encoding/json"

	"github.com/DavidAtikpo/irata-sub007/pkg/utils/pointer"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/rfctime"
)

// Signature carries an image as a data URL, verbatim as it was submitted.
type Signature struct {
	Image    string          `json:"image"`
	SignedAt rfctime.RFC3339 `json:"signedAt"`
}

func (s *Signature) Equal(o *Signature) bool {
	if (s == nil) || (o == nil) {
		return (s == nil) && (o == nil)
	}
	return s.Image == o.Image && s.SignedAt.Equal(o.SignedAt)
}

// DocumentSpec is the request body opening a new document.
//
// Fields is the kind-specific payload, passed through as-is and validated
// server side against the document kind.
type DocumentSpec struct {
	Kind      string          `json:"kind"`
	SessionId *string         `json:"sessionId,omitempty"`
	Fields    json.RawMessage `json:"fields"`

	// Signature signs the document on creation. User-first kinds
	// (disclaimer, medical) require it.
	Signature *SignRequest `json:"signature,omitempty"`
}

// SignRequest is the request body adding one signature image.
type SignRequest struct {
	Image string `json:"image"`
}

type Detail struct {
	DocumentId       string          `json:"documentId"`
	Kind             string          `json:"kind"`
	Status           string          `json:"status"`
	OwnerUserId      *string         `json:"ownerUserId,omitempty"`
	SessionId        *string         `json:"sessionId,omitempty"`
	Fields           json.RawMessage `json:"fields"`
	PrimarySignature *Signature      `json:"primarySignature,omitempty"`
	CounterSignature *Signature      `json:"counterSignature,omitempty"`
	CreatedAt        rfctime.RFC3339 `json:"createdAt"`
	UpdatedAt        rfctime.RFC3339 `json:"updatedAt"`
}

func (d Detail) Equal(o Detail) bool {
	return d.DocumentId == o.DocumentId &&
		d.Kind == o.Kind &&
		d.Status == o.Status &&
		pointer.SafeDeref(d.OwnerUserId) == pointer.SafeDeref(o.OwnerUserId) &&
		pointer.SafeDeref(d.SessionId) == pointer.SafeDeref(o.SessionId) &&
		bytes.Equal(d.Fields, o.Fields) &&
		d.PrimarySignature.Equal(o.PrimarySignature) &&
		d.CounterSignature.Equal(o.CounterSignature) &&
		d.CreatedAt.Equal(o.CreatedAt) &&
		d.UpdatedAt.Equal(o.UpdatedAt)
}

// InductionEntry is one induction document as one trainee sees it.
type InductionEntry struct {
	Document      Detail     `json:"document"`
	UserHasSigned bool       `json:"userHasSigned"`
	UserSignature *Signature `json:"userSignature,omitempty"`
}

func (e InductionEntry) Equal(o InductionEntry) bool {
	return e.Document.Equal(o.Document) &&
		e.UserHasSigned == o.UserHasSigned &&
		e.UserSignature.Equal(o.UserSignature)
}
