package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apisess "github.com/DavidAtikpo/irata-sub007/pkg/api/types/sessions"
	binderr "github.com/DavidAtikpo/irata-sub007/pkg/bindings/errors"
	bindsess "github.com/DavidAtikpo/irata-sub007/pkg/bindings/sessions"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	kerr "github.com/DavidAtikpo/irata-sub007/pkg/domain/errors"
	ksessdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/session/db"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/slices"
)

const dateFormat = "2006-01-02"

// SessionCreateHandler schedules a training session. Admin only.
func SessionCreateHandler(dbSession ksessdb.SessionInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		spec := new(apisess.SessionSpec)
		if err := json.NewDecoder(c.Request().Body).Decode(spec); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if spec.Name == "" {
			return binderr.BadRequest("name is required", nil)
		}
		niveau, err := domain.AsNiveau(spec.Niveau)
		if err != nil {
			return binderr.BadRequest(err.Error(), err)
		}
		startDate, err := time.Parse(dateFormat, spec.StartDate)
		if err != nil {
			return binderr.BadRequest("startDate should be YYYY-MM-DD", err)
		}
		endDate, err := time.Parse(dateFormat, spec.EndDate)
		if err != nil {
			return binderr.BadRequest("endDate should be YYYY-MM-DD", err)
		}
		if endDate.Before(startDate) {
			return binderr.BadRequest("endDate should not come before startDate", nil)
		}

		sessionId, err := dbSession.Create(ctx, domain.NewSessionParam{
			Name:      spec.Name,
			Niveau:    niveau,
			StartDate: startDate,
			EndDate:   endDate,
		})
		if err != nil {
			if hterr := dbError(err); hterr.Code == http.StatusConflict {
				return binderr.Conflict(
					"a session with this name is already scheduled",
					binderr.WithError(err),
				)
			} else {
				return hterr
			}
		}

		session, hterr := getSession(c, dbSession, sessionId)
		if hterr != nil {
			return hterr
		}
		return c.JSON(http.StatusOK, bindsess.ComposeDetail(session))
	}
}

func getSession(c echo.Context, dbSession ksessdb.SessionInterface, sessionId string) (domain.TrainingSession, *echo.HTTPError) {
	sessions, err := dbSession.Get(c.Request().Context(), []string{sessionId})
	if err != nil {
		return domain.TrainingSession{}, binderr.InternalServerError(err)
	}
	session, ok := sessions[sessionId]
	if !ok {
		return domain.TrainingSession{}, binderr.NotFound()
	}
	return session, nil
}

// FindSessionHandler lists scheduled sessions, newest start date first.
// Public, so candidates can pick a course before registering.
func FindSessionHandler(dbSession ksessdb.SessionInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		ids, err := dbSession.Find(ctx)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		sessions, err := dbSession.Get(ctx, ids)
		if err != nil {
			return binderr.InternalServerError(err)
		}

		details := []apisess.Detail{}
		for _, id := range ids {
			if session, ok := sessions[id]; ok {
				details = append(details, bindsess.ComposeDetail(session))
			}
		}
		return c.JSON(http.StatusOK, details)
	}
}

func GetSessionHandler(dbSession ksessdb.SessionInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, hterr := getSession(c, dbSession, c.Param("sessionId"))
		if hterr != nil {
			return hterr
		}
		return c.JSON(http.StatusOK, bindsess.ComposeDetail(session))
	}
}

// AttendanceSignHandler records the calling trainee's signature for one day
// of a session.
func AttendanceSignHandler(dbSession ksessdb.SessionInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		actor, hterr := actorOf(c)
		if hterr != nil {
			return hterr
		}

		spec := new(apisess.AttendanceSpec)
		if err := json.NewDecoder(c.Request().Body).Decode(spec); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		day, err := time.Parse(dateFormat, spec.Day)
		if err != nil {
			return binderr.BadRequest("day should be YYYY-MM-DD", err)
		}
		sig, hterr := parseSignature(spec.Signature)
		if hterr != nil {
			return hterr
		}

		attendance := domain.Attendance{
			SessionId: c.Param("sessionId"),
			UserId:    actor.UserId,
			Day:       day,
			Signature: sig,
		}
		if err := dbSession.AddAttendance(ctx, attendance); err != nil {
			if hterr := dbError(err); hterr.Code == http.StatusConflict {
				return binderr.Conflict(
					"you have already signed this day", binderr.WithError(err),
				)
			} else {
				return hterr
			}
		}
		return c.JSON(http.StatusOK, bindsess.ComposeAttendance(attendance))
	}
}

// ListAttendanceHandler lists the attendance sheet of a session, oldest
// first. Admin only.
func ListAttendanceHandler(dbSession ksessdb.SessionInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		attendances, err := dbSession.ListAttendance(ctx, c.Param("sessionId"))
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return binderr.NotFound()
			}
			return binderr.InternalServerError(err)
		}
		return c.JSON(
			http.StatusOK,
			slices.Map(attendances, bindsess.ComposeAttendance),
		)
	}
}
