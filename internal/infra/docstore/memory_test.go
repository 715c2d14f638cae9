//go:build unit

package docstore_test

import (
	"context"
	"testing"
	"time"

	"servicebook/internal/infra/docstore"
	"servicebook/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestMemoryStoreContract(t *testing.T) {
	suite.Run(t, &StoreContractSuite{
		newStore: func(*testing.T) shared.DocumentStore {
			return docstore.NewMemoryStore(docstore.DefaultMaxAttempts)
		},
	})
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore(0)
	require.NoError(t, store.Update(ctx, shared.WriteSet{"a/b": "x"}))

	snap, err := store.Get(ctx, "a")
	require.NoError(t, err)
	snap.Value.(map[string]any)["b"] = "mutated"

	again, err := store.Get(ctx, "a/b")
	require.NoError(t, err)
	assert.Equal(t, "x", again.Value)
}

func TestMemoryStore_TransactionHonorsContext(t *testing.T) {
	store := docstore.NewMemoryStore(1000)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// Every attempt sees a changed value, so the loop only ends on ctx.
	n := 0
	_, err := store.Transaction(ctx, "c", func(cur any) (any, bool) {
		n++
		require.NoError(t, store.Update(context.Background(), shared.WriteSet{"c": n}))
		return 0, false
	})

	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMemoryStore_TransactionBudget(t *testing.T) {
	store := docstore.NewMemoryStore(3)
	calls := 0

	_, err := store.Transaction(context.Background(), "c", func(cur any) (any, bool) {
		calls++
		require.NoError(t, store.Update(context.Background(), shared.WriteSet{"c": calls}))
		return 0, false
	})

	require.ErrorIs(t, err, shared.ErrTxnContention)
	assert.Equal(t, 3, calls)
}

func TestMemoryStore_DisjointWriters(t *testing.T) {
	runDisjointWriters(t, docstore.NewMemoryStore(docstore.DefaultMaxAttempts), 3*docstore.DefaultMaxAttempts)
}
