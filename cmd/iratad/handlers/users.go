package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apiuser "github.com/DavidAtikpo/irata-sub007/pkg/api/types/users"
	"github.com/DavidAtikpo/irata-sub007/pkg/auth"
	binderr "github.com/DavidAtikpo/irata-sub007/pkg/bindings/errors"
	binduser "github.com/DavidAtikpo/irata-sub007/pkg/bindings/users"
	kerr "github.com/DavidAtikpo/irata-sub007/pkg/domain/errors"
	kregdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/registration/db"
)

// LoginHandler checks credentials and opens a token session.
//
// Wrong email and wrong password answer the same way, so the endpoint does
// not reveal which emails have an account.
func LoginHandler(dbUser kregdb.UserInterface, issuer *auth.Issuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		spec := new(apiuser.LoginSpec)
		if err := json.NewDecoder(c.Request().Body).Decode(spec); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if spec.Email == "" || spec.Password == "" {
			return binderr.BadRequest("email and password are required", nil)
		}

		user, err := dbUser.GetByEmail(ctx, spec.Email)
		if err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return binderr.Unauthorized("incorrect email or password", nil)
			}
			return binderr.InternalServerError(err)
		}
		if err := auth.VerifyPassword(user.PasswordHash, spec.Password); err != nil {
			return binderr.Unauthorized("incorrect email or password", nil)
		}

		token, err := issuer.Issue(user)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apiuser.TokenResponse{
			Token: token,
			User:  binduser.ComposeDetail(user),
		})
	}
}

// WhoAmIHandler answers the profile of the calling user.
func WhoAmIHandler(dbUser kregdb.UserInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		actor, hterr := actorOf(c)
		if hterr != nil {
			return hterr
		}

		user, err := dbUser.Get(ctx, actor.UserId)
		if err != nil {
			return dbError(err)
		}
		return c.JSON(http.StatusOK, binduser.ComposeDetail(user))
	}
}
