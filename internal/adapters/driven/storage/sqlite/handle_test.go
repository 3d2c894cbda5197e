package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taskd/internal/core/domain"
)

func TestHandle_AcquireIsMemoised(t *testing.T) {
	h := NewHandle(t.TempDir())
	t.Cleanup(func() { _ = h.Release() })

	first, err := h.Acquire()
	require.NoError(t, err)
	second, err := h.Acquire()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.True(t, h.Held())
}

func TestHandle_ConcurrentAcquireSharesOneStore(t *testing.T) {
	h := NewHandle(t.TempDir())
	t.Cleanup(func() { _ = h.Release() })

	const n = 16
	stores := make([]*Store, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stores[i], errs[i] = h.Acquire()
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, stores[0], stores[i])
	}
}

func TestHandle_ReleaseWithoutAcquireIsNoop(t *testing.T) {
	h := NewHandle(t.TempDir())

	assert.NoError(t, h.Release())
	assert.NoError(t, h.Release())
	assert.False(t, h.Held())
}

func TestHandle_AcquireAfterReleaseReopens(t *testing.T) {
	h := NewHandle(t.TempDir())
	t.Cleanup(func() { _ = h.Release() })
	ctx := context.Background()

	first, err := h.Acquire()
	require.NoError(t, err)
	created, err := first.TaskStore().Create(ctx, domain.NewTask{Title: "survives"})
	require.NoError(t, err)

	require.NoError(t, h.Release())
	assert.False(t, h.Held())

	second, err := h.Acquire()
	require.NoError(t, err)
	assert.NotSame(t, first, second)

	got, err := second.TaskStore().Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
}

func TestHandle_FailedAcquireIsRetried(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	h := NewHandle(filepath.Join(blocker, "data"))

	_, err := h.Acquire()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.False(t, h.Held())

	require.NoError(t, os.Remove(blocker))

	store, err := h.Acquire()
	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.NoError(t, h.Release())
}

func TestHandle_TaskStoreIsLazy(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "lazy")
	h := NewHandle(dir)
	t.Cleanup(func() { _ = h.Release() })

	tasks := h.TaskStore()
	assert.False(t, h.Held())
	assert.NoDirExists(t, dir)

	created, err := tasks.Create(context.Background(), domain.NewTask{Title: "first"})
	require.NoError(t, err)
	assert.True(t, h.Held())
	assert.FileExists(t, filepath.Join(dir, DatabaseFile))

	list, err := tasks.List(context.Background(), domain.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestHandle_TaskStorePropagatesAcquireFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))
	tasks := NewHandle(filepath.Join(blocker, "data")).TaskStore()
	ctx := context.Background()

	_, err := tasks.List(ctx, domain.TaskFilter{})
	assert.ErrorIs(t, err, domain.ErrStorage)
	_, err = tasks.Get(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrStorage)
	_, err = tasks.Create(ctx, domain.NewTask{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrStorage)
	_, err = tasks.Update(ctx, 1, domain.TaskPatch{Title: domain.Ptr("x")})
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, tasks.Delete(ctx, 1), domain.ErrStorage)
}

func TestHandle_Ping(t *testing.T) {
	h := NewHandle(t.TempDir())
	t.Cleanup(func() { _ = h.Release() })

	assert.NoError(t, h.Ping(context.Background()))
	assert.True(t, h.Held())
}
