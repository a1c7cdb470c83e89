package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apireg "github.com/DavidAtikpo/irata-sub007/pkg/api/types/registrations"
	apiuser "github.com/DavidAtikpo/irata-sub007/pkg/api/types/users"
	"github.com/DavidAtikpo/irata-sub007/pkg/auth"
	binderr "github.com/DavidAtikpo/irata-sub007/pkg/bindings/errors"
	bindreg "github.com/DavidAtikpo/irata-sub007/pkg/bindings/registrations"
	binduser "github.com/DavidAtikpo/irata-sub007/pkg/bindings/users"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	kregdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/registration/db"
	"github.com/DavidAtikpo/irata-sub007/pkg/mailer"
)

// RegistrationRequestHandler records a step-1 pre-registration. Public.
func RegistrationRequestHandler(
	dbReg kregdb.RegistrationInterface,
	notifier *mailer.Notifier,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		spec := new(apireg.RegistrationSpec)
		if err := json.NewDecoder(c.Request().Body).Decode(spec); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if spec.Email == "" || spec.Prenom == "" || spec.Nom == "" {
			return binderr.BadRequest("email, prenom and nom are required", nil)
		}
		niveau, err := domain.AsNiveau(spec.Niveau)
		if err != nil {
			return binderr.BadRequest(err.Error(), err)
		}

		registrationId, err := dbReg.Create(ctx, domain.NewRegistrationParam{
			Email:     spec.Email,
			Prenom:    spec.Prenom,
			Nom:       spec.Nom,
			Niveau:    niveau,
			SessionId: spec.SessionId,
		})
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyRegistered) {
				return binderr.Conflict(
					"you have already requested this course",
					binderr.WithAdvice("please log in to continue your registration"),
					binderr.WithError(err),
				)
			}
			return dbError(err)
		}

		reg, err := dbReg.Get(ctx, registrationId)
		if err != nil {
			return dbError(err)
		}
		notifier.RegistrationReceived(ctx, reg)
		return c.JSON(http.StatusOK, bindreg.ComposeDetail(reg))
	}
}

// RegistrationCompleteHandler finishes step 2: it opens the user account
// and logs the new user in. Public, keyed by the registration id from the
// step-1 response.
func RegistrationCompleteHandler(
	dbReg kregdb.RegistrationInterface,
	dbUser kregdb.UserInterface,
	issuer *auth.Issuer,
	notifier *mailer.Notifier,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		spec := new(apireg.CompletionSpec)
		if err := json.NewDecoder(c.Request().Body).Decode(spec); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if spec.Password == "" {
			return binderr.BadRequest("password is required", nil)
		}

		reg, err := dbReg.Get(ctx, c.Param("registrationId"))
		if err != nil {
			return dbError(err)
		}
		if reg.Step != 1 {
			return binderr.Conflict(
				"this registration is already completed",
				binderr.WithAdvice("please log in"),
			)
		}

		hash, err := auth.HashPassword(spec.Password)
		if err != nil {
			return binderr.InternalServerError(err)
		}

		param := domain.NewUserParam{
			Email:        reg.Email,
			Prenom:       reg.Prenom,
			Nom:          reg.Nom,
			Adresse:      spec.Adresse,
			Telephone:    spec.Telephone,
			PasswordHash: hash,
		}
		if spec.BirthDate != "" {
			birthDate := spec.BirthDate
			param.BirthDate = &birthDate
		}

		userId, err := dbUser.Create(ctx, param)
		if err != nil {
			if hterr := dbError(err); hterr.Code == http.StatusConflict {
				return binderr.Conflict(
					"an account already exists for this email",
					binderr.WithAdvice("please log in"),
					binderr.WithError(err),
				)
			} else {
				return hterr
			}
		}

		if err := dbReg.Complete(ctx, reg.Id); err != nil {
			return dbError(err)
		}

		user, err := dbUser.Get(ctx, userId)
		if err != nil {
			return dbError(err)
		}
		token, err := issuer.Issue(user)
		if err != nil {
			return binderr.InternalServerError(err)
		}

		reg.Step = 2
		notifier.RegistrationCompleted(ctx, reg)
		return c.JSON(http.StatusOK, apiuser.TokenResponse{
			Token: token,
			User:  binduser.ComposeDetail(user),
		})
	}
}

// FindRegistrationHandler lists the registration requests of one email,
// newest first. Admin only.
func FindRegistrationHandler(dbReg kregdb.RegistrationInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		email := c.QueryParam("email")
		if email == "" {
			return binderr.BadRequest("query parameter `email` is required", nil)
		}

		regs, err := dbReg.FindByEmail(ctx, email)
		if err != nil {
			return binderr.InternalServerError(err)
		}

		details := []apireg.Detail{}
		for _, reg := range regs {
			details = append(details, bindreg.ComposeDetail(reg))
		}
		return c.JSON(http.StatusOK, details)
	}
}
