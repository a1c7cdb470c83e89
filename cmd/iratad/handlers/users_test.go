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
	apiuser "github.com/DavidAtikpo/irata-sub007/pkg/api/types/users"
	"github.com/DavidAtikpo/irata-sub007/pkg/auth"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	kerr "github.com/DavidAtikpo/irata-sub007/pkg/domain/errors"
	regmocks "github.com/DavidAtikpo/irata-sub007/pkg/domain/registration/db/mock"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/try"
)

func TestLoginHandler(t *testing.T) {

	issuer := auth.NewIssuer([]byte("test-sign-key"), time.Hour)
	hash := try.To(auth.HashPassword("s3cret!")).OrFatal(t)
	account := domain.User{
		Id: "user-1", Email: "marie@example.com",
		Prenom: "Marie", Nom: "Dupont", Role: domain.RoleUser,
		PasswordHash: hash,
	}

	t.Run("correct credentials open a session", func(t *testing.T) {
		mockUser := regmocks.NewUserInterface()
		mockUser.Impl.GetByEmail = func(context.Context, string) (domain.User, error) {
			return account, nil
		}

		e := echo.New()
		c, resprec := httptestutil.Post(
			e, "/api/auth/login",
			strings.NewReader(`{"email": "marie@example.com", "password": "s3cret!"}`),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.LoginHandler(mockUser, issuer)
		if err := testee(c); err != nil {
			t.Fatalf("handler returns error unexpectedly: %+v", err)
		}

		actual := apiuser.TokenResponse{}
		if err := json.Unmarshal(resprec.Body.Bytes(), &actual); err != nil {
			t.Fatalf("response is not a token response: %s", err)
		}
		claims := try.To(issuer.Verify(actual.Token)).OrFatal(t)
		if claims.Subject != "user-1" || claims.Role != "user" {
			t.Errorf("unmatch claims: %+v", claims)
		}
		if actual.User.UserId != "user-1" {
			t.Errorf("unmatch user: %+v", actual.User)
		}
	})

	t.Run("a wrong password is rejected", func(t *testing.T) {
		mockUser := regmocks.NewUserInterface()
		mockUser.Impl.GetByEmail = func(context.Context, string) (domain.User, error) {
			return account, nil
		}

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/auth/login",
			strings.NewReader(`{"email": "marie@example.com", "password": "wrong"}`),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.LoginHandler(mockUser, issuer)
		err := testee(c)
		if httperr := httpErrorOf(t, err); httperr.Code != http.StatusUnauthorized {
			t.Errorf("status code is not 401: %d", httperr.Code)
		}
	})

	t.Run("an unknown email is rejected the same way", func(t *testing.T) {
		mockUser := regmocks.NewUserInterface()
		mockUser.Impl.GetByEmail = func(context.Context, string) (domain.User, error) {
			return domain.User{}, kerr.ErrMissing
		}

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/auth/login",
			strings.NewReader(`{"email": "nobody@example.com", "password": "s3cret!"}`),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.LoginHandler(mockUser, issuer)
		err := testee(c)
		if httperr := httpErrorOf(t, err); httperr.Code != http.StatusUnauthorized {
			t.Errorf("status code is not 401: %d", httperr.Code)
		}
	})
}

func TestWhoAmIHandler(t *testing.T) {
	t.Run("it answers the calling user's profile", func(t *testing.T) {
		mockUser := regmocks.NewUserInterface()
		mockUser.Impl.Get = func(_ context.Context, userId string) (domain.User, error) {
			return domain.User{
				Id: userId, Email: "marie@example.com",
				Prenom: "Marie", Nom: "Dupont", Role: domain.RoleUser,
			}, nil
		}

		e := echo.New()
		c, resprec := httptestutil.Get(e, "/api/auth/me")
		auth.SetActor(c, auth.Actor{UserId: "user-1", Role: domain.RoleUser})

		testee := handlers.WhoAmIHandler(mockUser)
		if err := testee(c); err != nil {
			t.Fatalf("handler returns error unexpectedly: %+v", err)
		}

		actual := apiuser.Detail{}
		if err := json.Unmarshal(resprec.Body.Bytes(), &actual); err != nil {
			t.Fatalf("response is not a user detail: %s", err)
		}
		if actual.UserId != "user-1" || actual.Email != "marie@example.com" {
			t.Errorf("unmatch response: %+v", actual)
		}
	})
}
