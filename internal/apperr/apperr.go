package apperr

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeNotFound      Code = "not_found"
	CodeUnauthorized  Code = "unauthorized"
	CodeConflict      Code = "conflict"
	CodeConfiguration Code = "configuration"
	CodeInvalid       Code = "invalid"
)

// Error is a caller-correctable domain error. Anything that is not an *Error is
// treated as an internal failure by the HTTP layer.
type Error struct {
	Code    Code
	Message string
	Details []string
}

func (e *Error) Error() string { return e.Message }

func NotFound(format string, args ...any) error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) error {
	return &Error{Code: CodeUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

func Configuration(format string, args ...any) error {
	return &Error{Code: CodeConfiguration, Message: fmt.Sprintf(format, args...)}
}

func Invalid(format string, args ...any) error {
	return &Error{Code: CodeInvalid, Message: fmt.Sprintf(format, args...)}
}

// WithDetails returns a copy of err carrying extra details, or err unchanged when
// it is not an *Error.
func WithDetails(err error, details ...string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	cp := *e
	cp.Details = append(append([]string(nil), e.Details...), details...)
	return &cp
}

func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == code
}
