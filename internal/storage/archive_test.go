package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/calllog/internal/model"
	"github.com/Veraticus/calllog/internal/storage"
	"github.com/Veraticus/calllog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchive_MigrateTwice(t *testing.T) {
	archive := testutil.SetupArchive(t)

	// Running again is a no-op.
	require.NoError(t, archive.Migrate(context.Background()))

	count, err := archive.Count(context.Background(), "data.csv")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestArchive_SyncAndQuery(t *testing.T) {
	archive := testutil.SetupArchive(t)
	ctx := context.Background()

	calls := []model.Call{
		model.NewCall(3, "555-0103", "router", "НЕТ"),
		model.NewCall(1, "555-0101", "billing", "да"),
		model.NewCall(2, "555-0102", "billing", "нет"),
	}

	var seen []int
	require.NoError(t, archive.Sync(ctx, "/calls/data.csv", calls, func(c model.Call) {
		seen = append(seen, c.Number)
	}))
	assert.Equal(t, []int{3, 1, 2}, seen)

	count, err := archive.Count(ctx, "/calls/data.csv")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	stored, err := archive.Calls(ctx, "/calls/data.csv")
	require.NoError(t, err)
	assert.Equal(t, []model.Call{calls[1], calls[2], calls[0]}, stored)

	unresolved, err := archive.Unresolved(ctx, "/calls/data.csv", model.ResolvedNo)
	require.NoError(t, err)
	require.Len(t, unresolved, 2)
	assert.Equal(t, 2, unresolved[0].Number)
	assert.Equal(t, 3, unresolved[1].Number)
}

func TestArchive_SyncReplacesSource(t *testing.T) {
	archive := testutil.SetupArchive(t)
	ctx := context.Background()

	require.NoError(t, archive.Sync(ctx, "a.csv", []model.Call{
		model.NewCall(1, "x", "old", "да"),
		model.NewCall(2, "y", "old", "да"),
	}, nil))
	require.NoError(t, archive.Sync(ctx, "b.csv", []model.Call{
		model.NewCall(1, "z", "other", "нет"),
	}, nil))
	require.NoError(t, archive.Sync(ctx, "a.csv", []model.Call{
		model.NewCall(5, "w", "new", "нет"),
		model.NewCall(5, "v", "newer", "нет"),
	}, nil))

	stored, err := archive.Calls(ctx, "a.csv")
	require.NoError(t, err)
	assert.Equal(t, []model.Call{model.NewCall(5, "v", "newer", "нет")}, stored)

	count, err := archive.Count(ctx, "b.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestArchive_SyncRequiresSource(t *testing.T) {
	archive := testutil.SetupArchive(t)
	err := archive.Sync(context.Background(), "", nil, nil)
	assert.ErrorIs(t, err, storage.ErrEmptyString)
}

func TestOpenArchive_File(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "calls.db")

	archive, err := storage.OpenArchive(dbPath)
	require.NoError(t, err)
	require.NoError(t, archive.Migrate(context.Background()))
	require.NoError(t, archive.Close())

	reopened, err := storage.OpenArchive(dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	require.NoError(t, reopened.Migrate(context.Background()))

	_, err = storage.OpenArchive("")
	assert.ErrorIs(t, err, storage.ErrEmptyString)
}
