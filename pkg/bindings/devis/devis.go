package devis

import (
	apidevis "github.com/DavidAtikpo/irata-sub007/pkg/api/types/devis"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/rfctime"
)

func ComposeDetail(d domain.Devis) apidevis.Detail {
	return apidevis.Detail{
		DevisId:           d.Id,
		UserId:            d.UserId,
		SessionId:         d.SessionId,
		ClientName:        d.ClientName,
		MontantCents:      d.MontantCents,
		Statut:            d.Statut.String(),
		ContratDocumentId: d.ContratDocumentId,
		CreatedAt:         rfctime.New(d.CreatedAt),
		UpdatedAt:         rfctime.New(d.UpdatedAt),
	}
}
