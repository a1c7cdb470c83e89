package registrations

import (
	apireg "github.com/DavidAtikpo/irata-sub007/pkg/api/types/registrations"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/rfctime"
)

func ComposeDetail(r domain.Registration) apireg.Detail {
	return apireg.Detail{
		RegistrationId: r.Id,
		Email:          r.Email,
		Prenom:         r.Prenom,
		Nom:            r.Nom,
		Niveau:         int(r.Niveau),
		SessionId:      r.SessionId,
		Step:           r.Step,
		CreatedAt:      rfctime.New(r.CreatedAt),
		UpdatedAt:      rfctime.New(r.UpdatedAt),
	}
}
