package outbox

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/jobboard/domain"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "outbox.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_EnqueueBatchRemove(t *testing.T) {
	store := openStore(t)
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	for i, kind := range []domain.ActivityKind{domain.ActivityJobCreated, domain.ActivityApplicationCreated, domain.ActivityStatusChanged} {
		require.NoError(t, store.Enqueue(Item{
			Activity:   domain.Activity{ID: string(kind), Kind: kind, EmployerID: "e1"},
			EnqueuedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)

	batch, err := store.Batch(2)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, domain.ActivityJobCreated, batch[0].Activity.Kind)
	assert.Equal(t, domain.ActivityApplicationCreated, batch[1].Activity.Kind)

	require.NoError(t, store.Remove(batch[0]))
	size, err = store.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)
}

func TestStore_RequeueKeepsOrder(t *testing.T) {
	store := openStore(t)
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Enqueue(Item{ID: "first", EnqueuedAt: base}))
	require.NoError(t, store.Enqueue(Item{ID: "second", EnqueuedAt: base.Add(time.Second)}))

	batch, err := store.Batch(10)
	require.NoError(t, err)
	require.NoError(t, store.Requeue(batch[0]))

	batch, err = store.Batch(10)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, "first", batch[0].ID)
	assert.Equal(t, 1, batch[0].Retries)
	assert.Equal(t, 0, batch[1].Retries)
}

func TestStore_Cleanup(t *testing.T) {
	store := openStore(t)
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Enqueue(Item{ID: "old", EnqueuedAt: base.Add(-48 * time.Hour)}))
	require.NoError(t, store.Enqueue(Item{ID: "fresh", EnqueuedAt: base}))

	removed, err := store.Cleanup(base.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	batch, err := store.Batch(10)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "fresh", batch[0].ID)
}

func TestStore_ClosedOrNil(t *testing.T) {
	var store *Store
	_, err := store.Size()
	assert.Error(t, err)
	assert.Error(t, store.Enqueue(Item{}))
	assert.NoError(t, store.Close())
}
