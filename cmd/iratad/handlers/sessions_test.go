package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DavidAtikpo/irata-sub007/cmd/iratad/handlers"
	httptestutil "github.com/DavidAtikpo/irata-sub007/internal/testutils/http"
	apisess "github.com/DavidAtikpo/irata-sub007/pkg/api/types/sessions"
	"github.com/DavidAtikpo/irata-sub007/pkg/auth"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	kerr "github.com/DavidAtikpo/irata-sub007/pkg/domain/errors"
	sessmocks "github.com/DavidAtikpo/irata-sub007/pkg/domain/session/db/mock"
)

func TestSessionCreateHandler(t *testing.T) {

	t.Run("an admin schedules a session", func(t *testing.T) {
		stored := domain.TrainingSession{
			Id: "session-1", Name: "2024-06 niveau 1", Niveau: domain.Niveau(1),
			StartDate: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
		}

		mockSession := sessmocks.NewSessionInterface()
		mockSession.Impl.Create = func(_ context.Context, param domain.NewSessionParam) (string, error) {
			return "session-1", nil
		}
		mockSession.Impl.Get = func(context.Context, []string) (map[string]domain.TrainingSession, error) {
			return map[string]domain.TrainingSession{"session-1": stored}, nil
		}

		e := echo.New()
		c, resprec := httptestutil.Post(
			e, "/api/sessions", strings.NewReader(`{
				"name": "2024-06 niveau 1", "niveau": 1,
				"startDate": "2024-06-03", "endDate": "2024-06-07"
			}`),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.SessionCreateHandler(mockSession)
		if err := testee(c); err != nil {
			t.Fatalf("handler returns error unexpectedly: %+v", err)
		}

		param := mockSession.Calls.Create[0]
		if param.Name != "2024-06 niveau 1" || param.Niveau != domain.Niveau(1) {
			t.Errorf("unmatch param: %+v", param)
		}
		if !param.StartDate.Equal(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unmatch startDate: %s", param.StartDate)
		}

		actual := apisess.Detail{}
		if err := json.Unmarshal(resprec.Body.Bytes(), &actual); err != nil {
			t.Fatalf("response is not a session detail: %s", err)
		}
		if actual.StartDate != "2024-06-03" || actual.EndDate != "2024-06-07" {
			t.Errorf("unmatch dates: %+v", actual)
		}
	})

	t.Run("ending before starting is a bad request", func(t *testing.T) {
		mockSession := sessmocks.NewSessionInterface()

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/sessions", strings.NewReader(`{
				"name": "2024-06 niveau 1", "niveau": 1,
				"startDate": "2024-06-07", "endDate": "2024-06-03"
			}`),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.SessionCreateHandler(mockSession)
		err := testee(c)
		if httperr := httpErrorOf(t, err); httperr.Code != http.StatusBadRequest {
			t.Errorf("status code is not 400: %d", httperr.Code)
		}
	})

	t.Run("a duplicated session name is a conflict", func(t *testing.T) {
		mockSession := sessmocks.NewSessionInterface()
		mockSession.Impl.Create = func(context.Context, domain.NewSessionParam) (string, error) {
			return "", kerr.ErrConflict
		}

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/sessions", strings.NewReader(`{
				"name": "2024-06 niveau 1", "niveau": 1,
				"startDate": "2024-06-03", "endDate": "2024-06-07"
			}`),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.SessionCreateHandler(mockSession)
		err := testee(c)
		if httperr := httpErrorOf(t, err); httperr.Code != http.StatusConflict {
			t.Errorf("status code is not 409: %d", httperr.Code)
		}
	})
}

func TestAttendanceSignHandler(t *testing.T) {

	t.Run("a trainee signs one day", func(t *testing.T) {
		mockSession := sessmocks.NewSessionInterface()
		mockSession.Impl.AddAttendance = func(context.Context, domain.Attendance) error {
			return nil
		}

		e := echo.New()
		c, resprec := httptestutil.Post(
			e, "/api/sessions/session-1/attendance", strings.NewReader(`{
				"day": "2024-06-03",
				"signature": {"image": "`+pngDataURL+`"}
			}`),
			httptestutil.ContentType("application/json"),
		)
		c.SetParamNames("sessionId")
		c.SetParamValues("session-1")
		auth.SetActor(c, auth.Actor{UserId: "user-1", Role: domain.RoleUser})

		testee := handlers.AttendanceSignHandler(mockSession)
		if err := testee(c); err != nil {
			t.Fatalf("handler returns error unexpectedly: %+v", err)
		}
		if resprec.Result().StatusCode != http.StatusOK {
			t.Errorf("status code is not 200: %d", resprec.Result().StatusCode)
		}

		attendance := mockSession.Calls.AddAttendance[0]
		if attendance.SessionId != "session-1" || attendance.UserId != "user-1" {
			t.Errorf("unmatch attendance: %+v", attendance)
		}
		if !attendance.Day.Equal(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unmatch day: %s", attendance.Day)
		}
		if attendance.Signature.Image.String() != pngDataURL {
			t.Errorf("signature image should be kept verbatim: %s", attendance.Signature.Image)
		}
	})

	t.Run("signing the same day twice is a conflict", func(t *testing.T) {
		mockSession := sessmocks.NewSessionInterface()
		mockSession.Impl.AddAttendance = func(context.Context, domain.Attendance) error {
			return kerr.ErrConflict
		}

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/sessions/session-1/attendance", strings.NewReader(`{
				"day": "2024-06-03",
				"signature": {"image": "`+pngDataURL+`"}
			}`),
			httptestutil.ContentType("application/json"),
		)
		c.SetParamNames("sessionId")
		c.SetParamValues("session-1")
		auth.SetActor(c, auth.Actor{UserId: "user-1", Role: domain.RoleUser})

		testee := handlers.AttendanceSignHandler(mockSession)
		err := testee(c)
		if httperr := httpErrorOf(t, err); httperr.Code != http.StatusConflict {
			t.Errorf("status code is not 409: %d", httperr.Code)
		}
	})
}

func TestListAttendanceHandler(t *testing.T) {
	t.Run("it lists the sheet of a session", func(t *testing.T) {
		sig := exampleSignature(t, time.Date(2024, 6, 3, 8, 30, 0, 0, time.UTC))
		mockSession := sessmocks.NewSessionInterface()
		mockSession.Impl.ListAttendance = func(context.Context, string) ([]domain.Attendance, error) {
			return []domain.Attendance{
				{
					SessionId: "session-1", UserId: "user-1",
					Day:       time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
					Signature: sig,
				},
			}, nil
		}

		e := echo.New()
		c, resprec := httptestutil.Get(e, "/api/sessions/session-1/attendance")
		c.SetParamNames("sessionId")
		c.SetParamValues("session-1")

		testee := handlers.ListAttendanceHandler(mockSession)
		if err := testee(c); err != nil {
			t.Fatalf("handler returns error unexpectedly: %+v", err)
		}

		actual := []apisess.Attendance{}
		if err := json.Unmarshal(resprec.Body.Bytes(), &actual); err != nil {
			t.Fatalf("response is not attendance rows: %s", err)
		}
		if len(actual) != 1 || actual[0].Day != "2024-06-03" || actual[0].UserId != "user-1" {
			t.Errorf("unmatch response: %+v", actual)
		}
	})
}
