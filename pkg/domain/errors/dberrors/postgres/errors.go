package postgres

import (
	"fmt"

	domerr "github.com/DavidAtikpo/irata-sub007/pkg/domain/errors"
)

// requested record is missing.
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s is not found in %s", m.Identity, m.Table)
}

func (m Missing) Unwrap() error {
	return domerr.ErrMissing
}

// write is rejected by a uniqueness or state constraint.
type Conflict struct {
	Table  string
	Reason string
}

var _ error = Conflict{}

func (c Conflict) Error() string {
	return fmt.Sprintf("conflict on %s: %s", c.Table, c.Reason)
}

func (c Conflict) Unwrap() error {
	return domerr.ErrConflict
}
