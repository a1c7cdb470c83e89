package users

import (
	apiuser "github.com/DavidAtikpo/irata-sub007/pkg/api/types/users"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/rfctime"
)

func ComposeDetail(u domain.User) apiuser.Detail {
	return apiuser.Detail{
		UserId:    u.Id,
		Email:     u.Email,
		Prenom:    u.Prenom,
		Nom:       u.Nom,
		Role:      u.Role.String(),
		CreatedAt: rfctime.New(u.CreatedAt),
	}
}
