package errors

import "errors"

// requested record does not exist.
var ErrMissing = errors.New("missing")

// requested record exists more than expected.
var ErrTooMuch = errors.New("too much")

// write conflicts with an existing record.
var ErrConflict = errors.New("conflict")
