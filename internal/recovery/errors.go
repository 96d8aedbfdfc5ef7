package recovery

import (
	"errors"
	"fmt"
)

// ErrSessionExpired means a stage was entered without the upstream
// identifiers it depends on (contact identifier, success code). It is
// structural, not a field error: callers redirect back to the request
// stage instead of rendering it inline.
var ErrSessionExpired = errors.New("recovery session expired")

// ErrBusy is returned when a stage already has a request in flight.
var ErrBusy = errors.New("request already in flight")

// ValidationError is a local, field-scoped input error. It is raised
// before any network call and is always correctable by the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ServiceError is a rejection reported by the recovery service (any
// non-2xx response). Message is the service's own error text when it
// sent one, else a generic fallback chosen by the caller.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("recovery service error (status %d)", e.Status)
}

// IsRejection reports whether err is a service-side rejection, as
// opposed to a transport failure. Verification uses this to decide
// whether to wipe the entered code.
func IsRejection(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}
