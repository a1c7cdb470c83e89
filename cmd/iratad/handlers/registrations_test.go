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
	apireg "github.com/DavidAtikpo/irata-sub007/pkg/api/types/registrations"
	apiuser "github.com/DavidAtikpo/irata-sub007/pkg/api/types/users"
	"github.com/DavidAtikpo/irata-sub007/pkg/auth"
	bindreg "github.com/DavidAtikpo/irata-sub007/pkg/bindings/registrations"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	kerr "github.com/DavidAtikpo/irata-sub007/pkg/domain/errors"
	regmocks "github.com/DavidAtikpo/irata-sub007/pkg/domain/registration/db/mock"
	"github.com/DavidAtikpo/irata-sub007/pkg/mailer"
)

func silentNotifier() *mailer.Notifier {
	return mailer.NewNotifier(
		mailer.MailerFunc(func(context.Context, mailer.Mail) error { return nil }), nil,
	)
}

func TestRegistrationRequestHandler(t *testing.T) {

	t.Run("a candidate requests a course", func(t *testing.T) {
		stored := domain.Registration{
			Id:        "reg-1",
			Email:     "marie@example.com",
			Prenom:    "Marie",
			Nom:       "Dupont",
			Niveau:    domain.Niveau(1),
			SessionId: ref("session-1"),
			Step:      1,
			CreatedAt: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC),
		}

		mockReg := regmocks.NewRegistrationInterface()
		mockReg.Impl.Create = func(_ context.Context, param domain.NewRegistrationParam) (string, error) {
			return "reg-1", nil
		}
		mockReg.Impl.Get = func(_ context.Context, registrationId string) (domain.Registration, error) {
			return stored, nil
		}

		mails := []mailer.Mail{}
		notifier := mailer.NewNotifier(
			mailer.MailerFunc(func(_ context.Context, m mailer.Mail) error {
				mails = append(mails, m)
				return nil
			}),
			[]string{"admin@example.com"},
		)

		e := echo.New()
		c, resprec := httptestutil.Post(
			e, "/api/registrations", strings.NewReader(`{
				"email": "marie@example.com",
				"prenom": "Marie",
				"nom": "Dupont",
				"niveau": 1,
				"sessionId": "session-1"
			}`),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.RegistrationRequestHandler(mockReg, notifier)
		if err := testee(c); err != nil {
			t.Fatalf("handler returns error unexpectedly: %+v", err)
		}
		if resprec.Result().StatusCode != http.StatusOK {
			t.Errorf("status code is not 200: %d", resprec.Result().StatusCode)
		}

		if len(mockReg.Calls.Create) != 1 {
			t.Fatalf("Create is not called once: %d", len(mockReg.Calls.Create))
		}
		param := mockReg.Calls.Create[0]
		if param.Email != "marie@example.com" || param.Niveau != domain.Niveau(1) {
			t.Errorf("unmatch param: %+v", param)
		}
		if param.SessionId == nil || *param.SessionId != "session-1" {
			t.Errorf("unmatch sessionId: %v", param.SessionId)
		}

		// one mail to the candidate, one to the admins.
		if len(mails) != 2 {
			t.Errorf("candidate and admins should be mailed: %+v", mails)
		}

		actual := apireg.Detail{}
		if err := json.Unmarshal(resprec.Body.Bytes(), &actual); err != nil {
			t.Fatalf("response is not a registration detail: %s", err)
		}
		if expected := bindreg.ComposeDetail(stored); !actual.Equal(expected) {
			t.Errorf("unmatch response:\n- actual  : %+v\n- expected: %+v", actual, expected)
		}
	})

	t.Run("a duplicate request advises to log in", func(t *testing.T) {
		mockReg := regmocks.NewRegistrationInterface()
		mockReg.Impl.Create = func(context.Context, domain.NewRegistrationParam) (string, error) {
			return "", domain.ErrAlreadyRegistered
		}

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/registrations", strings.NewReader(`{
				"email": "marie@example.com", "prenom": "Marie", "nom": "Dupont", "niveau": 1
			}`),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.RegistrationRequestHandler(mockReg, silentNotifier())
		err := testee(c)
		if httperr := httpErrorOf(t, err); httperr.Code != http.StatusConflict {
			t.Errorf("status code is not 409: %d", httperr.Code)
		}
	})

	t.Run("a niveau out of range is a bad request", func(t *testing.T) {
		mockReg := regmocks.NewRegistrationInterface()

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/registrations", strings.NewReader(`{
				"email": "marie@example.com", "prenom": "Marie", "nom": "Dupont", "niveau": 4
			}`),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.RegistrationRequestHandler(mockReg, silentNotifier())
		err := testee(c)
		if httperr := httpErrorOf(t, err); httperr.Code != http.StatusBadRequest {
			t.Errorf("status code is not 400: %d", httperr.Code)
		}
		if len(mockReg.Calls.Create) != 0 {
			t.Error("Create should not be called")
		}
	})
}

func TestRegistrationCompleteHandler(t *testing.T) {

	issuer := auth.NewIssuer([]byte("test-sign-key"), time.Hour)

	step1 := domain.Registration{
		Id:     "reg-1",
		Email:  "marie@example.com",
		Prenom: "Marie",
		Nom:    "Dupont",
		Niveau: domain.Niveau(1),
		Step:   1,
	}

	t.Run("completion opens the account and logs the user in", func(t *testing.T) {
		mockReg := regmocks.NewRegistrationInterface()
		mockReg.Impl.Get = func(context.Context, string) (domain.Registration, error) {
			return step1, nil
		}
		mockReg.Impl.Complete = func(context.Context, string) error { return nil }

		mockUser := regmocks.NewUserInterface()
		mockUser.Impl.Create = func(_ context.Context, param domain.NewUserParam) (string, error) {
			return "user-1", nil
		}
		mockUser.Impl.Get = func(context.Context, string) (domain.User, error) {
			return domain.User{
				Id: "user-1", Email: "marie@example.com",
				Prenom: "Marie", Nom: "Dupont", Role: domain.RoleUser,
			}, nil
		}

		e := echo.New()
		c, resprec := httptestutil.Post(
			e, "/api/registrations/reg-1/complete", strings.NewReader(`{
				"password": "s3cret!",
				"adresse": "12 rue des Cordes",
				"telephone": "0600000000",
				"birthDate": "1990-01-01"
			}`),
			httptestutil.ContentType("application/json"),
		)
		c.SetParamNames("registrationId")
		c.SetParamValues("reg-1")

		testee := handlers.RegistrationCompleteHandler(mockReg, mockUser, issuer, silentNotifier())
		if err := testee(c); err != nil {
			t.Fatalf("handler returns error unexpectedly: %+v", err)
		}

		if len(mockUser.Calls.Create) != 1 {
			t.Fatalf("user Create is not called once: %d", len(mockUser.Calls.Create))
		}
		param := mockUser.Calls.Create[0]
		if param.Email != "marie@example.com" {
			t.Errorf("the account should take the step-1 email: %s", param.Email)
		}
		if len(param.PasswordHash) == 0 {
			t.Error("the password should be hashed")
		}
		if string(param.PasswordHash) == "s3cret!" {
			t.Error("the password should not be stored raw")
		}
		if param.BirthDate == nil || *param.BirthDate != "1990-01-01" {
			t.Errorf("unmatch birthDate: %v", param.BirthDate)
		}
		if len(mockReg.Calls.Complete) != 1 || mockReg.Calls.Complete[0] != "reg-1" {
			t.Errorf("the registration should be marked complete: %+v", mockReg.Calls.Complete)
		}

		actual := apiuser.TokenResponse{}
		if err := json.Unmarshal(resprec.Body.Bytes(), &actual); err != nil {
			t.Fatalf("response is not a token response: %s", err)
		}
		if actual.Token == "" {
			t.Error("a token should be issued")
		}
		claims, err := issuer.Verify(actual.Token)
		if err != nil {
			t.Fatalf("the issued token does not verify: %s", err)
		}
		if claims.Subject != "user-1" {
			t.Errorf("the token should name the new user: %s", claims.Subject)
		}
	})

	t.Run("completing twice is a conflict", func(t *testing.T) {
		done := step1
		done.Step = 2

		mockReg := regmocks.NewRegistrationInterface()
		mockReg.Impl.Get = func(context.Context, string) (domain.Registration, error) {
			return done, nil
		}

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/registrations/reg-1/complete",
			strings.NewReader(`{"password": "s3cret!"}`),
			httptestutil.ContentType("application/json"),
		)
		c.SetParamNames("registrationId")
		c.SetParamValues("reg-1")

		testee := handlers.RegistrationCompleteHandler(
			mockReg, regmocks.NewUserInterface(), issuer, silentNotifier(),
		)
		err := testee(c)
		if httperr := httpErrorOf(t, err); httperr.Code != http.StatusConflict {
			t.Errorf("status code is not 409: %d", httperr.Code)
		}
	})

	t.Run("an unknown registration is not found", func(t *testing.T) {
		mockReg := regmocks.NewRegistrationInterface()
		mockReg.Impl.Get = func(context.Context, string) (domain.Registration, error) {
			return domain.Registration{}, kerr.ErrMissing
		}

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/registrations/no-such/complete",
			strings.NewReader(`{"password": "s3cret!"}`),
			httptestutil.ContentType("application/json"),
		)
		c.SetParamNames("registrationId")
		c.SetParamValues("no-such")

		testee := handlers.RegistrationCompleteHandler(
			mockReg, regmocks.NewUserInterface(), issuer, silentNotifier(),
		)
		err := testee(c)
		if httperr := httpErrorOf(t, err); httperr.Code != http.StatusNotFound {
			t.Errorf("status code is not 404: %d", httperr.Code)
		}
	})
}
