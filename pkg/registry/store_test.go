package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetEntry_HasTags(t *testing.T) {
	e := &AssetEntry{Tags: []string{"door", "wood", "interior"}}

	assert.True(t, e.HasTags([]string{"door"}))
	assert.True(t, e.HasTags([]string{"door", "wood"}))
	assert.True(t, e.HasTags(nil), "empty requirement matches everything")
	assert.False(t, e.HasTags([]string{"door", "steel"}))
}

func TestFileStore_RegisterAndQuery(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir())

	require.NoError(t, store.Register(ctx, NewAssetEntry(
		"oak_door", []string{"door", "wood"}, Dimensions{Width: 0.9, Depth: 0.1, Height: 2.0}, 1)))
	require.NoError(t, store.Register(ctx, NewAssetEntry(
		"steel_door", []string{"door", "steel"}, Dimensions{Width: 0.9, Depth: 0.1, Height: 2.0}, 2)))
	require.NoError(t, store.Register(ctx, NewAssetEntry(
		"casement", []string{"window"}, Dimensions{Width: 1.0, Depth: 0.1, Height: 1.2}, 3)))

	release, err := store.Acquire(ctx)
	require.NoError(t, err)
	doors, err := store.QueryByTags([]string{"door"})
	release()
	require.NoError(t, err)

	require.Len(t, doors, 2)
	assert.Equal(t, "oak_door", doors[0].Name, "query returns stable registry order by name")
	assert.Equal(t, "steel_door", doors[1].Name)
}

func TestFileStore_QueryEmptyRegistry(t *testing.T) {
	store := NewFileStore(t.TempDir())

	release, err := store.Acquire(context.Background())
	require.NoError(t, err)
	defer release()

	entries, err := store.QueryByTags([]string{"door"})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStore_RegisterReplacesByName(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir())

	first := NewAssetEntry("door", []string{"door"}, Dimensions{Width: 0.8}, 1)
	second := NewAssetEntry("door", []string{"door", "v2"}, Dimensions{Width: 0.9}, 2)
	require.NoError(t, store.Register(ctx, first))
	require.NoError(t, store.Register(ctx, second))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 0.9, entries[0].Dimensions.Width)
	assert.Contains(t, entries[0].Tags, "v2")
}

func TestFileStore_InventoryRoundTripsOnDisk(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	entry := NewAssetEntry("bench", []string{"furniture"}, Dimensions{Width: 1.5, Depth: 0.5, Height: 0.45}, 9)
	entry.Metadata = map[string]string{"material": "oak"}
	require.NoError(t, NewFileStore(dir).Register(ctx, entry))

	// A separate store over the same directory sees the same inventory.
	entries, err := NewFileStore(dir).List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
	assert.Equal(t, "oak", entries[0].Metadata["material"])
	assert.Equal(t, int64(9), entries[0].Seed)
}

func TestFileStore_LockTimeoutIsBoundedAndDistinct(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	holder := NewFileStore(dir)
	release, err := holder.Acquire(ctx)
	require.NoError(t, err)
	defer release()

	contender := NewFileStoreWithTimeout(dir, 150*time.Millisecond)
	start := time.Now()
	_, err = contender.Acquire(ctx)
	elapsed := time.Since(start)

	require.ErrorIs(t, err, ErrLockTimeout)
	assert.Less(t, elapsed, 2*time.Second, "wait must be bounded, not an infinite block")
}

func TestFileStore_ReleaseAllowsNextAcquire(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store := NewFileStoreWithTimeout(dir, 500*time.Millisecond)
	release, err := store.Acquire(ctx)
	require.NoError(t, err)
	release()

	release2, err := store.Acquire(ctx)
	require.NoError(t, err)
	release2()
}
