package domain

import (
	"errors"
	"fmt"
)

// Backend unreachable and entity absent are both reported as ErrNotFound.
var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")

	ErrFlightNotFound    = fmt.Errorf("flight %w", ErrNotFound)
	ErrTicketNotFound    = fmt.Errorf("ticket %w", ErrNotFound)
	ErrPrivilegeNotFound = fmt.Errorf("privilege %w", ErrNotFound)
	ErrTicketNotPaid     = fmt.Errorf("ticket is not paid: %w", ErrBadRequest)
)
