package devis

import (
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/pointer"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/rfctime"
)

// DevisSpec is the request body opening a new devis.
type DevisSpec struct {
	SessionId    string `json:"sessionId"`
	ClientName   string `json:"clientName"`
	MontantCents int64  `json:"montantCents"`
}

// DecisionSpec is the request body deciding a devis.
//
// Statut must be "valide" or "refuse".
type DecisionSpec struct {
	Statut string `json:"statut"`
}

type Detail struct {
	DevisId           string          `json:"devisId"`
	UserId            string          `json:"userId"`
	SessionId         string          `json:"sessionId"`
	ClientName        string          `json:"clientName"`
	MontantCents      int64           `json:"montantCents"`
	Statut            string          `json:"statut"`
	ContratDocumentId *string         `json:"contratDocumentId,omitempty"`
	CreatedAt         rfctime.RFC3339 `json:"createdAt"`
	UpdatedAt         rfctime.RFC3339 `json:"updatedAt"`
}

func (d Detail) Equal(o Detail) bool {
	return d.DevisId == o.DevisId &&
		d.UserId == o.UserId &&
		d.SessionId == o.SessionId &&
		d.ClientName == o.ClientName &&
		d.MontantCents == o.MontantCents &&
		d.Statut == o.Statut &&
		pointer.SafeDeref(d.ContratDocumentId) == pointer.SafeDeref(o.ContratDocumentId) &&
		d.CreatedAt.Equal(o.CreatedAt) &&
		d.UpdatedAt.Equal(o.UpdatedAt)
}
