package nonconformites

import (
	apinc "github.com/DavidAtikpo/irata-sub007/pkg/api/types/nonconformites"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/rfctime"
)

func ComposeDetail(nc domain.NonConformite) apinc.Detail {
	return apinc.Detail{
		NcId:              nc.Id,
		Titre:             nc.Titre,
		Description:       nc.Description,
		Gravite:           nc.Gravite.String(),
		Lieu:              nc.Lieu,
		DetecteurId:       nc.DetecteurId,
		ActionDocumentIds: nc.ActionDocumentIds,
		CreatedAt:         rfctime.New(nc.CreatedAt),
		UpdatedAt:         rfctime.New(nc.UpdatedAt),
	}
}
