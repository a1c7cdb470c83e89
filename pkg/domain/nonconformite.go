package domain

import (
	"fmt"
	"time"
)

type Gravite string

const (
	GraviteMineure  Gravite = "mineure"
	GraviteMajeure  Gravite = "majeure"
	GraviteCritique Gravite = "critique"
)

func AsGravite(s string) (Gravite, error) {
	switch g := Gravite(s); g {
	case GraviteMineure, GraviteMajeure, GraviteCritique:
		return g, nil
	default:
		return "", fmt.Errorf("'%s' is not a Gravite", s)
	}
}

func (g Gravite) String() string {
	return string(g)
}

// NonConformite is a logged quality/safety non-conformance.
//
// Each one can spawn corrective-action documents, which then follow the
// admin-first signing workflow.
type NonConformite struct {
	Id          string
	Titre       string
	Description string
	Gravite     Gravite
	Lieu        string

	// user who detected and reported it, when known.
	DetecteurId *string

	// corrective-action document ids opened from this record.
	ActionDocumentIds []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type NewNonConformiteParam struct {
	Titre       string
	Description string
	Gravite     Gravite
	Lieu        string
	DetecteurId *string
}
