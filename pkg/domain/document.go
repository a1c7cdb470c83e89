package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/DavidAtikpo/irata-sub007/pkg/utils/dataurl"
)

// DocumentKind identifies which signable document a record is.
type DocumentKind string

const (
	// IRATA liability disclaimer, filled and signed by a candidate.
	KindDisclaimer DocumentKind = "disclaimer"

	// course-orientation acknowledgment, issued by the admin per session,
	// counter-signed by each trainee.
	KindInduction DocumentKind = "induction"

	// medical fitness declaration, filled and signed by a candidate.
	KindMedical DocumentKind = "medical"

	// safety briefing record, issued by the admin, signed by attendees.
	KindToolboxTalk DocumentKind = "toolbox-talk"

	// remediation task opened from a non-conformité.
	KindCorrectiveAction DocumentKind = "corrective-action"

	// contract generated from a validated devis, issued by the admin.
	KindContrat DocumentKind = "contrat"
)

func AsDocumentKind(s string) (DocumentKind, error) {
	switch k := DocumentKind(s); k {
	case KindDisclaimer, KindInduction, KindMedical,
		KindToolboxTalk, KindCorrectiveAction, KindContrat:
		return k, nil
	default:
		return "", fmt.Errorf("'%s' is not a DocumentKind", s)
	}
}

func (k DocumentKind) String() string {
	return string(k)
}

// DocumentStatus is the lifecycle status of a Document.
//
// Every document kind shares this one enum; each kind walks a linear
// sub-sequence of it (see Workflow). Statuses only move forward.
type DocumentStatus string

const (
	// created, not yet submitted for review.
	StatusDraft DocumentStatus = "draft"

	// submitted by the owner, awaiting the admin counter-signature.
	StatusPending DocumentStatus = "pending"

	// carries every admin-side signature it needs.
	StatusSigned DocumentStatus = "signed"

	// visible and, where applicable, signable by the target users.
	StatusPublished DocumentStatus = "published"

	// every expected signature is present and the artifact has been delivered.
	StatusSent DocumentStatus = "sent"
)

func AsDocumentStatus(s string) (DocumentStatus, error) {
	switch st := DocumentStatus(s); st {
	case StatusDraft, StatusPending, StatusSigned, StatusPublished, StatusSent:
		return st, nil
	default:
		return "", fmt.Errorf("'%s' is not a DocumentStatus", s)
	}
}

func (s DocumentStatus) String() string {
	return string(s)
}

var ErrInvalidStatusChanging = errors.New("cannot change document status")

func NewErrInvalidStatusChanging(from, to DocumentStatus) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusChanging, from, to)
}

// document cannot be counter-signed before the owner has signed it.
var ErrPrimarySignatureMissing = errors.New("primary signature is missing")

// Workflow describes how documents of one kind walk the status enum.
//
// There are two shapes:
//
//   - user-first: the owner fills and signs, then the admin counter-signs
//     (disclaimer, medical). Progression: pending -> signed -> sent. These
//     are never published: they hold personal data and stay between the
//     owner and the admin.
//
//   - admin-first: the admin issues and signs, publishes, and the target
//     users add their signatures afterwards (induction, toolbox-talk,
//     corrective-action, contrat). Progression: draft -> signed -> published -> sent.
type Workflow struct {
	Kind DocumentKind

	// AdminFirst is true when the admin signature comes before any user one.
	AdminFirst bool

	// ordered statuses this kind walks through.
	Progression []DocumentStatus
}

// Initial is the status a freshly created document of this kind gets.
func (w Workflow) Initial() DocumentStatus {
	return w.Progression[0]
}

// CanAdvance reports whether from -> to is one forward step of this workflow.
func (w Workflow) CanAdvance(from, to DocumentStatus) bool {
	for i, s := range w.Progression[:len(w.Progression)-1] {
		if s == from {
			return w.Progression[i+1] == to
		}
	}
	return false
}

var workflows = map[DocumentKind]Workflow{
	KindDisclaimer: {
		Kind:        KindDisclaimer,
		Progression: []DocumentStatus{StatusPending, StatusSigned, StatusSent},
	},
	KindMedical: {
		Kind:        KindMedical,
		Progression: []DocumentStatus{StatusPending, StatusSigned, StatusSent},
	},
	KindInduction: {
		Kind:        KindInduction,
		AdminFirst:  true,
		Progression: []DocumentStatus{StatusDraft, StatusSigned, StatusPublished, StatusSent},
	},
	KindToolboxTalk: {
		Kind:        KindToolboxTalk,
		AdminFirst:  true,
		Progression: []DocumentStatus{StatusDraft, StatusSigned, StatusPublished, StatusSent},
	},
	KindCorrectiveAction: {
		Kind:        KindCorrectiveAction,
		AdminFirst:  true,
		Progression: []DocumentStatus{StatusDraft, StatusSigned, StatusPublished, StatusSent},
	},
	KindContrat: {
		Kind:        KindContrat,
		AdminFirst:  true,
		Progression: []DocumentStatus{StatusDraft, StatusSigned, StatusPublished, StatusSent},
	},
}

func (k DocumentKind) Workflow() Workflow {
	return workflows[k]
}

// Signature is one party's signature image with the moment it was given.
type Signature struct {
	Image    dataurl.Image
	SignedAt time.Time
}

func (s *Signature) Equal(other *Signature) bool {
	if s == nil || other == nil {
		return s == nil && other == nil
	}
	return s.Image.Equal(other.Image) && s.SignedAt.Equal(other.SignedAt)
}

// Document is one submission record of a signable document.
type Document struct {
	Id string

	Kind DocumentKind

	// submitting party. nil for admin-initiated documents.
	OwnerUserId *string

	// training session the document belongs to, when session-scoped.
	SessionId *string

	// per-kind form values. See Fields.
	Fields Fields

	// signature of the submitting party (or, for admin-first kinds, of the
	// counter-signing user).
	PrimarySignature *Signature

	// signature of the admin/assessor.
	CounterSignature *Signature

	Status DocumentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanCountersign reports whether the admin may counter-sign this document now.
//
// For user-first kinds the primary signature must already be present.
func (d *Document) CanCountersign() error {
	w := d.Kind.Workflow()
	if !w.CanAdvance(d.Status, StatusSigned) {
		return NewErrInvalidStatusChanging(d.Status, StatusSigned)
	}
	if !w.AdminFirst && d.PrimarySignature == nil {
		return ErrPrimarySignatureMissing
	}
	return nil
}
