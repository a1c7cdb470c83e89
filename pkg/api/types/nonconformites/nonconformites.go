package nonconformites

import (
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/cmp"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/pointer"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/rfctime"
)

// NonConformiteSpec is the request body logging a non-conformité.
type NonConformiteSpec struct {
	Titre       string `json:"titre"`
	Description string `json:"description"`
	Gravite     string `json:"gravite"`
	Lieu        string `json:"lieu"`
}

// ActionSpec is the request body opening a corrective-action document on a
// non-conformité.
type ActionSpec struct {
	Action      string `json:"action"`
	Responsable string `json:"responsable"`
	Echeance    string `json:"echeance"` // YYYY-MM-DD
}

type Detail struct {
	NcId              string          `json:"ncId"`
	Titre             string          `json:"titre"`
	Description       string          `json:"description"`
	Gravite           string          `json:"gravite"`
	Lieu              string          `json:"lieu"`
	DetecteurId       *string         `json:"detecteurId,omitempty"`
	ActionDocumentIds []string        `json:"actionDocumentIds"`
	CreatedAt         rfctime.RFC3339 `json:"createdAt"`
	UpdatedAt         rfctime.RFC3339 `json:"updatedAt"`
}

func (d Detail) Equal(o Detail) bool {
	return d.NcId == o.NcId &&
		d.Titre == o.Titre &&
		d.Description == o.Description &&
		d.Gravite == o.Gravite &&
		d.Lieu == o.Lieu &&
		pointer.SafeDeref(d.DetecteurId) == pointer.SafeDeref(o.DetecteurId) &&
		cmp.SliceEq(d.ActionDocumentIds, o.ActionDocumentIds) &&
		d.CreatedAt.Equal(o.CreatedAt) &&
		d.UpdatedAt.Equal(o.UpdatedAt)
}
