package auth_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	httptestutil "github.com/DavidAtikpo/irata-sub007/internal/testutils/http"
	"github.com/DavidAtikpo/irata-sub007/pkg/auth"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/try"
)

func TestIssuer(t *testing.T) {
	signKey := []byte("test-sign-key")

	t.Run("it verifies a token it issued", func(t *testing.T) {
		testee := auth.NewIssuer(signKey, 1*time.Hour)

		token := try.To(testee.Issue(domain.User{
			Id: "user-1", Role: domain.RoleAdmin,
		})).OrFatal(t)

		claims := try.To(testee.Verify(token)).OrFatal(t)
		if claims.Subject != "user-1" {
			t.Errorf("unexpected subject: %s", claims.Subject)
		}
		if claims.Role != "admin" {
			t.Errorf("unexpected role: %s", claims.Role)
		}
	})

	t.Run("it rejects an expired token", func(t *testing.T) {
		testee := auth.NewIssuer(signKey, -1*time.Hour) // expired on issue

		token := try.To(testee.Issue(domain.User{
			Id: "user-1", Role: domain.RoleUser,
		})).OrFatal(t)

		if _, err := testee.Verify(token); err == nil {
			t.Error("expected an error, got nil")
		}
	})

	t.Run("it rejects a token signed with another key", func(t *testing.T) {
		issuer := auth.NewIssuer([]byte("another-key"), 1*time.Hour)
		token := try.To(issuer.Issue(domain.User{
			Id: "user-1", Role: domain.RoleUser,
		})).OrFatal(t)

		testee := auth.NewIssuer(signKey, 1*time.Hour)
		if _, err := testee.Verify(token); err == nil {
			t.Error("expected an error, got nil")
		}
	})

	t.Run("it rejects garbage", func(t *testing.T) {
		testee := auth.NewIssuer(signKey, 1*time.Hour)
		if _, err := testee.Verify("not.a.token"); err == nil {
			t.Error("expected an error, got nil")
		}
	})
}

func TestPassword(t *testing.T) {
	hash := try.To(auth.HashPassword("s3cret")).OrFatal(t)

	if err := auth.VerifyPassword(hash, "s3cret"); err != nil {
		t.Errorf("correct password is rejected: %s", err)
	}
	if err := auth.VerifyPassword(hash, "wrong"); err == nil {
		t.Error("wrong password is accepted")
	}
}

func TestMiddleware(t *testing.T) {
	signKey := []byte("test-sign-key")
	issuer := auth.NewIssuer(signKey, 1*time.Hour)

	handler := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	okFor := func(t *testing.T, mw []echo.MiddlewareFunc, opts ...httptestutil.RequestOption) int {
		t.Helper()
		e := echo.New()
		ctx, resp := httptestutil.Get(e, "/", opts...)

		h := handler
		for i := len(mw) - 1; 0 <= i; i-- {
			h = mw[i](h)
		}
		if err := h(ctx); err != nil {
			if httperr, ok := err.(*echo.HTTPError); ok {
				return httperr.Code
			}
			t.Fatalf("unexpected error type: %+v", err)
		}
		return resp.Code
	}

	t.Run("anonymous request passes Middleware but not Require", func(t *testing.T) {
		if code := okFor(t, []echo.MiddlewareFunc{auth.Middleware(issuer)}); code != http.StatusOK {
			t.Errorf("unexpected status: %d", code)
		}
		if code := okFor(t, []echo.MiddlewareFunc{
			auth.Middleware(issuer), auth.Require(),
		}); code != http.StatusUnauthorized {
			t.Errorf("unexpected status: %d", code)
		}
	})

	t.Run("a valid token satisfies Require and its role", func(t *testing.T) {
		token := try.To(issuer.Issue(domain.User{
			Id: "user-1", Role: domain.RoleAdmin,
		})).OrFatal(t)

		code := okFor(
			t,
			[]echo.MiddlewareFunc{
				auth.Middleware(issuer),
				auth.Require(),
				auth.RequireRole(domain.RoleAdmin),
			},
			httptestutil.BearerToken(token),
		)
		if code != http.StatusOK {
			t.Errorf("unexpected status: %d", code)
		}
	})

	t.Run("a user token cannot reach an admin route", func(t *testing.T) {
		token := try.To(issuer.Issue(domain.User{
			Id: "user-1", Role: domain.RoleUser,
		})).OrFatal(t)

		code := okFor(
			t,
			[]echo.MiddlewareFunc{
				auth.Middleware(issuer),
				auth.RequireRole(domain.RoleAdmin),
			},
			httptestutil.BearerToken(token),
		)
		if code != http.StatusForbidden {
			t.Errorf("unexpected status: %d", code)
		}
	})

	t.Run("a broken token is rejected even without Require", func(t *testing.T) {
		code := okFor(
			t,
			[]echo.MiddlewareFunc{auth.Middleware(issuer)},
			httptestutil.BearerToken("broken"),
		)
		if code != http.StatusUnauthorized {
			t.Errorf("unexpected status: %d", code)
		}
	})
}
