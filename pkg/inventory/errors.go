package inventory

import (
	"errors"
	"fmt"

	"github.com/Ratio1/grocery_manager_go/pkg/grocery"
)

var (
	// ErrUnknownField is returned by ParseField and UpdateDraft for names
	// outside the four form fields.
	ErrUnknownField = errors.New("inventory: unknown field")
	// ErrInvalidDraft is returned when a draft fails validation. Nothing is
	// sent to the backend in that case.
	ErrInvalidDraft = errors.New("inventory: invalid draft")
)

// Op names a view-model operation.
type Op string

const (
	OpLoad   Op = "load"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// OpError reports a failed operation. Err is the underlying cause, such as
// an *httpx.HTTPError, grocery.ErrNotFound or a validation error.
type OpError struct {
	Op  Op
	ID  grocery.ID
	Err error
}

func (e *OpError) Error() string {
	if e.ID.IsZero() {
		return fmt.Sprintf("inventory: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("inventory: %s %s: %v", e.Op, e.ID, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }
