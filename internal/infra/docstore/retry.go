package docstore

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"servicebook/internal/pkg/errs"
	"servicebook/internal/usecase/shared"
)

const (
	DefaultMaxAttempts = 25
	retryBase          = 2 * time.Millisecond
	retryCap           = 200 * time.Millisecond
)

// errConflict signals that an optimistic attempt lost a race and may be
// retried.
var errConflict = errors.New("optimistic write conflict")

// retry runs fn until it succeeds, fails with a non-retryable error, the
// budget is spent or ctx is done.
func retry(ctx context.Context, op string, maxAttempts int, retryable func(error) bool, fn func() error) error {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		err = fn()
		if err == nil || !retryable(err) {
			return err
		}
		if attempt == maxAttempts-1 {
			break
		}

		wait := calculateBackoff(attempt, retryBase)
		slog.Debug("retrying store operation", "op", op, "attempt", attempt+1, "wait_ms", wait.Milliseconds())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	slog.Warn("store operation failed after max attempts", "op", op, "attempts", maxAttempts, "error", err)
	return errs.Mark(errs.Wrap(err, op), shared.ErrTxnContention)
}

func isConflict(err error) bool {
	return errors.Is(err, errConflict)
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	if attempt > 6 {
		attempt = 6
	}
	waitTime := time.Duration(1<<attempt) * base
	if waitTime > retryCap {
		waitTime = retryCap
	}
	jitter := cryptoRandInt63n(int64(waitTime / 2))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- masked to a non-negative value
	return int64(uval) % n
}
