package apperror

import "errors"

// The service layer signals outcomes with these errors; the HTTP layer is
// the only place translating them to wire responses.

var (
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("data not valid")
)

type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

func AsNotFound(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}
