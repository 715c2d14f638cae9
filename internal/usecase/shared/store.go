package shared

import (
	"context"
	"encoding/json"
	"errors"

	"servicebook/internal/pkg/errs"
)

var (
	// ErrGuardFailed is returned by UpdateIf when the guard path no longer
	// holds the expected value. Nothing is written.
	ErrGuardFailed = errs.Mark(errors.New("document changed concurrently"), errs.ErrPrecondition)
	// ErrTxnContention is returned by Transaction once the retry budget is
	// spent.
	ErrTxnContention = errs.New("transaction retry budget exhausted")
	// ErrInvalidPath rejects empty paths and empty segments.
	ErrInvalidPath = errs.New("invalid document path")
)

// WriteSet maps absolute paths to values. A nil value deletes the path and
// everything below it. All entries land together or not at all.
type WriteSet map[string]any

// Guard pins a single path to the value observed at read time.
type Guard struct {
	Path   string
	Expect any
}

// TxnFunc computes the next value of a path from its current value. It may
// run several times. Returning abort=true leaves the path untouched.
type TxnFunc func(current any) (next any, abort bool)

// DocumentStore is a hierarchical key-addressed store. Values are JSON
// trees: maps, strings, float64, bool. Slices are stored as maps keyed by
// index and empty maps read back as absent.
type DocumentStore interface {
	Get(ctx context.Context, path string) (Snapshot, error)
	Update(ctx context.Context, ws WriteSet) error
	UpdateIf(ctx context.Context, guard Guard, ws WriteSet) error
	Transaction(ctx context.Context, path string, fn TxnFunc) (committed any, err error)
	NewKey() string
}

type Snapshot struct {
	Path  string
	Value any
}

func (s Snapshot) Exists() bool {
	return s.Value != nil
}

// Decode maps the snapshot onto dst through its JSON tags.
func (s Snapshot) Decode(dst any) error {
	raw, err := json.Marshal(s.Value)
	if err != nil {
		return errs.Wrap(err, "encode snapshot")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errs.Wrapf(err, "decode snapshot %s", s.Path)
	}
	return nil
}

// String returns the value when it is a string, "" otherwise.
func (s Snapshot) String() string {
	v, _ := s.Value.(string)
	return v
}
