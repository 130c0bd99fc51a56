package graph

import (
	"errors"

	"storefront/internal/auth"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
)

// Outcome codes surfaced to clients in the error extensions.
const (
	codeUnauthorized = "UNAUTHORIZED"
	codeNotFound     = "NOT_FOUND"
	codeBadInput     = "BAD_USER_INPUT"
	codeInternal     = "INTERNAL"
)

// apiError carries an outcome code (and optional field detail) alongside
// the underlying error. It implements gqlerrors.ExtendedError so the code
// ends up in the response's error extensions.
type apiError struct {
	err    error
	code   string
	fields map[string]interface{}
}

func (e *apiError) Error() string {
	return e.err.Error()
}

func (e *apiError) Unwrap() error {
	return e.err
}

// Extensions implements gqlerrors.ExtendedError.
func (e *apiError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.code}
	if len(e.fields) > 0 {
		ext["invalidFields"] = e.fields
	}
	return ext
}

// classify maps service and guard errors onto the contract's outcome
// taxonomy: Unauthorized, NotFound, ValidationFailure (with field detail),
// or an opaque internal failure for everything else.
func classify(err error) error {
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		return &apiError{err: err, code: codeUnauthorized}
	case errors.Is(err, services.ErrProductNotFound):
		return &apiError{err: err, code: codeNotFound}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]interface{}, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return &apiError{err: err, code: codeBadInput, fields: fields}
	}

	return &apiError{err: err, code: codeInternal}
}
