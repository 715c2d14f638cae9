package docstore

import (
	"context"
	"strings"
	"sync"

	"servicebook/internal/usecase/shared"

	"github.com/google/uuid"
)

// MemoryStore keeps the whole tree in process. Transaction still runs the
// optimistic read/compute/compare loop so callers see the same retry
// behaviour as the networked stores.
type MemoryStore struct {
	mu          sync.Mutex
	root        map[string]any
	maxAttempts int
}

var _ shared.DocumentStore = (*MemoryStore)(nil)

func NewMemoryStore(maxAttempts int) *MemoryStore {
	return &MemoryStore{
		root:        map[string]any{},
		maxAttempts: maxAttempts,
	}
}

func (s *MemoryStore) Get(ctx context.Context, path string) (shared.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return shared.Snapshot{}, err
	}
	segs, err := splitPath(path)
	if err != nil {
		return shared.Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return shared.Snapshot{Path: strings.Join(segs, "/"), Value: deepCopy(getAt(s.root, segs))}, nil
}

func (s *MemoryStore) Update(ctx context.Context, ws shared.WriteSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	writes, err := prepare(ws)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(writes)
	return nil
}

func (s *MemoryStore) UpdateIf(ctx context.Context, guard shared.Guard, ws shared.WriteSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	segs, err := splitPath(guard.Path)
	if err != nil {
		return err
	}
	expect, err := normalize(guard.Expect)
	if err != nil {
		return err
	}
	writes, err := prepare(ws)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !sameValue(getAt(s.root, segs), expect) {
		return shared.ErrGuardFailed
	}
	s.apply(writes)
	return nil
}

func (s *MemoryStore) Transaction(ctx context.Context, path string, fn shared.TxnFunc) (any, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	var committed any
	err = retry(ctx, "transaction "+path, s.maxAttempts, isConflict, func() error {
		s.mu.Lock()
		before := deepCopy(getAt(s.root, segs))
		s.mu.Unlock()

		next, abort := fn(deepCopy(before))
		if abort {
			committed = before
			return nil
		}
		nv, nerr := normalize(next)
		if nerr != nil {
			return nerr
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if !sameValue(getAt(s.root, segs), before) {
			return errConflict
		}
		setAt(s.root, segs, deepCopy(nv))
		committed = nv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return committed, nil
}

func (s *MemoryStore) NewKey() string {
	return newKey()
}

func (s *MemoryStore) apply(writes []write) {
	for _, w := range writes {
		setAt(s.root, w.segs, w.value)
	}
}

// newKey returns a time-ordered unique key.
func newKey() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
