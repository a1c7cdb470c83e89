package sessions

import (
	apisess "github.com/DavidAtikpo/irata-sub007/pkg/api/types/sessions"
	binddoc "github.com/DavidAtikpo/irata-sub007/pkg/bindings/documents"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/rfctime"
)

const dateFormat = "2006-01-02"

func ComposeDetail(s domain.TrainingSession) apisess.Detail {
	return apisess.Detail{
		SessionId: s.Id,
		Name:      s.Name,
		Niveau:    int(s.Niveau),
		StartDate: s.StartDate.Format(dateFormat),
		EndDate:   s.EndDate.Format(dateFormat),
		CreatedAt: rfctime.New(s.CreatedAt),
	}
}

func ComposeAttendance(a domain.Attendance) apisess.Attendance {
	return apisess.Attendance{
		SessionId: a.SessionId,
		UserId:    a.UserId,
		Day:       a.Day.Format(dateFormat),
		Signature: *binddoc.ComposeSignature(&a.Signature),
	}
}
