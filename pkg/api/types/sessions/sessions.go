package sessions

import (
	"github.com/DavidAtikpo/irata-sub007/pkg/api/types/documents"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/rfctime"
)

// SessionSpec is the request body scheduling a training session.
type SessionSpec struct {
	Name      string `json:"name"`
	Niveau    int    `json:"niveau"`
	StartDate string `json:"startDate"` // YYYY-MM-DD
	EndDate   string `json:"endDate"`   // YYYY-MM-DD
}

type Detail struct {
	SessionId string          `json:"sessionId"`
	Name      string          `json:"name"`
	Niveau    int             `json:"niveau"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	CreatedAt rfctime.RFC3339 `json:"createdAt"`
}

func (d Detail) Equal(o Detail) bool {
	return d.SessionId == o.SessionId &&
		d.Name == o.Name &&
		d.Niveau == o.Niveau &&
		d.StartDate == o.StartDate &&
		d.EndDate == o.EndDate &&
		d.CreatedAt.Equal(o.CreatedAt)
}

// AttendanceSpec is the request body signing one day of attendance.
type AttendanceSpec struct {
	Day       string                `json:"day"` // YYYY-MM-DD
	Signature documents.SignRequest `json:"signature"`
}

type Attendance struct {
	SessionId string              `json:"sessionId"`
	UserId    string              `json:"userId"`
	Day       string              `json:"day"`
	Signature documents.Signature `json:"signature"`
}

func (a Attendance) Equal(o Attendance) bool {
	return a.SessionId == o.SessionId &&
		a.UserId == o.UserId &&
		a.Day == o.Day &&
		a.Signature.Equal(&o.Signature)
}
