package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	binderr "github.com/DavidAtikpo/irata-sub007/pkg/bindings/errors"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
)

const actorContextKey = "irata/actor"

// Actor is the authenticated caller of a request.
type Actor struct {
	UserId string
	Role   domain.Role
}

// ActorOf returns the actor set by Middleware, if any.
func ActorOf(c echo.Context) (Actor, bool) {
	actor, ok := c.Get(actorContextKey).(Actor)
	return actor, ok
}

// SetActor binds an actor to the request. Middleware does this on verified
// tokens; tests use it to act as a logged-in user.
func SetActor(c echo.Context, actor Actor) {
	c.Set(actorContextKey, actor)
}

// Verifier is satisfied by *Issuer.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Middleware resolves the Authorization header into an Actor.
//
// Requests without the header pass through anonymous; a header carrying a
// bad token is rejected outright. Use Require or RequireRole downstream to
// force authentication.
func Middleware(verifier Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return binderr.Unauthorized("authorization scheme should be Bearer", nil)
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				return binderr.Unauthorized("token is invalid or expired", err)
			}

			role, err := domain.AsRole(claims.Role)
			if err != nil {
				return binderr.Unauthorized("token is invalid or expired", err)
			}

			SetActor(c, Actor{UserId: claims.Subject, Role: role})
			return next(c)
		}
	}
}

// Require rejects anonymous requests.
func Require() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := ActorOf(c); !ok {
				return binderr.Unauthorized("login required", nil)
			}
			return next(c)
		}
	}
}

// RequireRole rejects requests whose actor does not carry the role.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorOf(c)
			if !ok {
				return binderr.Unauthorized("login required", nil)
			}
			if actor.Role != role {
				return binderr.Forbidden("insufficient privilege")
			}
			return next(c)
		}
	}
}
