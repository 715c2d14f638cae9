package infra

import (
	"context"
	"errors"
	"log/slog"

	"servicebook/internal/pkg/errs"
)

type RepositoryErrorKind string

// Backend failure kinds. Usecases treat all of them as internal errors;
// the kind only steers retries and logging.
const (
	KindDBFailure    RepositoryErrorKind = "DB_FAILURE"
	KindCacheFailure RepositoryErrorKind = "CACHE_FAILURE"
	KindBrokerError  RepositoryErrorKind = "BROKER_ERROR"
	KindDecodeFailed RepositoryErrorKind = "DECODE_FAILED"
)

// RepositoryError is a store, cache or broker failure tagged with its kind.
type RepositoryError struct {
	Kind  RepositoryErrorKind
	Op    string
	cause error
}

func (e *RepositoryError) Error() string {
	if e.cause == nil {
		return string(e.Kind) + ": " + e.Op
	}
	return string(e.Kind) + ": " + e.cause.Error()
}

func (e *RepositoryError) Unwrap() error {
	return e.cause
}

// WrapRepoErr logs the failure and returns it tagged with kind. Undecodable
// payloads are a caller problem and log at warn.
func WrapRepoErr(logger *slog.Logger, kind RepositoryErrorKind, op string, err error) error {
	level := slog.LevelError
	if kind == KindDecodeFailed {
		level = slog.LevelWarn
	}
	attrs := []slog.Attr{slog.String("kind", string(kind)), slog.String("op", op)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	logger.LogAttrs(context.Background(), level, "repository error", attrs...)

	return &RepositoryError{Kind: kind, Op: op, cause: errs.Wrap(err, op)}
}

func KindOf(err error) (RepositoryErrorKind, bool) {
	var e *RepositoryError
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
