package errs

import (
	cr "github.com/cockroachdb/errors"
)

// Error taxonomy shared by every usecase. Handlers map a Kind to an HTTP status,
// so usecases only need to mark errors with one of these sentinels.
var (
	ErrAuthentication = cr.New("authentication failed")
	ErrValidation     = cr.New("validation failed")
	ErrPermission     = cr.New("permission denied")
	ErrPrecondition   = cr.New("precondition failed")
	ErrNotFound       = cr.New("not found")
	ErrInternal       = cr.New("internal error")
)

type Kind string

const (
	KindAuthentication Kind = "AUTHENTICATION"
	KindValidation     Kind = "VALIDATION"
	KindPermission     Kind = "PERMISSION"
	KindPrecondition   Kind = "PRECONDITION"
	KindNotFound       Kind = "NOT_FOUND"
	KindInternal       Kind = "INTERNAL"
)

var kindSentinels = []struct {
	kind Kind
	err  error
}{
	{KindAuthentication, ErrAuthentication},
	{KindValidation, ErrValidation},
	{KindPermission, ErrPermission},
	{KindPrecondition, ErrPrecondition},
	{KindNotFound, ErrNotFound},
	{KindInternal, ErrInternal},
}

func Authentication(msg string) error { return cr.Mark(cr.New(msg), ErrAuthentication) }
func Validation(msg string) error     { return cr.Mark(cr.New(msg), ErrValidation) }
func Permission(msg string) error     { return cr.Mark(cr.New(msg), ErrPermission) }
func Precondition(msg string) error   { return cr.Mark(cr.New(msg), ErrPrecondition) }
func NotFound(msg string) error       { return cr.Mark(cr.New(msg), ErrNotFound) }

// Internal keeps the cause for logging; its message is never shown to callers.
func Internal(err error, msg string) error {
	if err == nil {
		return cr.Mark(cr.New(msg), ErrInternal)
	}
	return cr.Mark(cr.Wrap(err, msg), ErrInternal)
}

// KindOf reports the taxonomy kind of err. Unmarked errors are internal.
func KindOf(err error) Kind {
	for _, ks := range kindSentinels {
		if cr.Is(err, ks.err) {
			return ks.kind
		}
	}
	return KindInternal
}

// Message returns the root cause's text. Taxonomy errors carry their
// caller-facing message there.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return cr.UnwrapAll(err).Error()
}
