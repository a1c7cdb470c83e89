package handlers_test

import (
	"errors"
	"testing"

	"github.com/labstack/echo/v4"
)

// a 1x1 png, as a signature pad would submit it.
const pngDataURL = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

func httpErrorOf(t *testing.T, err error) *echo.HTTPError {
	t.Helper()
	httperr := new(echo.HTTPError)
	if !errors.As(err, &httperr) {
		t.Fatalf("error is not echo.HTTPError: %+v", err)
	}
	return httperr
}
