package handlers

import (
	"errors"

	"github.com/labstack/echo/v4"

	binderr "github.com/DavidAtikpo/irata-sub007/pkg/bindings/errors"
	kerr "github.com/DavidAtikpo/irata-sub007/pkg/domain/errors"
)

// dbError translates repository errors into HTTP errors.
//
// Handlers map domain-specific errors themselves, before falling back here.
func dbError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, kerr.ErrMissing):
		return binderr.NotFound()
	case errors.Is(err, kerr.ErrConflict):
		return binderr.Conflict("conflict", binderr.WithError(err))
	default:
		return binderr.InternalServerError(err)
	}
}
