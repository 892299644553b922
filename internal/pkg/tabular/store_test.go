package tabular

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/refbase/internal/pkg/remote"
)

var testColumns = []string{"id", "name"}

func newTestStore(t *testing.T) (*Store, *remote.MemoryMirror, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	mirror := remote.NewMemoryMirror()
	store, err := NewStore(dir, mirror)
	require.NoError(t, err)
	return store, mirror, dir
}

func TestLoad_PrefersRemoteOverLocal(t *testing.T) {
	store, mirror, dir := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "t.csv"), []byte("id,name\n1,local\n"), 0o644))
	require.NoError(t, mirror.Write(ctx, store.RemotePath("t.csv"), []byte("id,name\n1,remote\n"), "seed"))

	table := store.Load(ctx, "t.csv", testColumns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "remote", table.Rows[0]["name"])
}

func TestLoad_FallsBackToLocalWhenRemoteMissing(t *testing.T) {
	store, _, dir := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "t.csv"), []byte("id,name\n1,local\n"), 0o644))

	table := store.Load(ctx, "t.csv", testColumns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "local", table.Rows[0]["name"])
}

func TestLoad_FallsBackToLocalWhenRemoteUnparsable(t *testing.T) {
	store, mirror, dir := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "t.csv"), []byte("id,name\n1,local\n"), 0o644))
	require.NoError(t, mirror.Write(ctx, store.RemotePath("t.csv"), []byte("\"broken"), "seed"))

	table := store.Load(ctx, "t.csv", testColumns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "local", table.Rows[0]["name"])
}

func TestLoad_YieldsEmptyTableWithExpectedColumnsWhenNothingExists(t *testing.T) {
	store, _, _ := newTestStore(t)

	table := store.Load(context.Background(), "missing.csv", testColumns)

	assert.Empty(t, table.Rows)
	assert.Equal(t, testColumns, table.Columns)
}

func TestLoad_CompletesMissingColumns(t *testing.T) {
	store, mirror, _ := newTestStore(t)
	ctx := context.Background()

	// An older revision of the table without the name column
	require.NoError(t, mirror.Write(ctx, store.RemotePath("t.csv"), []byte("id\n1\n"), "seed"))

	table := store.Load(ctx, "t.csv", testColumns)
	require.Len(t, table.Rows, 1)
	assert.True(t, table.HasColumn("name"))
	assert.Equal(t, "", table.Rows[0]["name"])
}

func TestSave_WritesLocalAndMirror(t *testing.T) {
	store, mirror, dir := newTestStore(t)
	ctx := context.Background()

	table := New(testColumns)
	table.Append(Row{"id": "1", "name": "Ana"})
	require.NoError(t, store.Save(ctx, "t.csv", table))

	local, err := os.ReadFile(filepath.Join(dir, "t.csv"))
	require.NoError(t, err)
	remoteCopy, err := mirror.Read(ctx, store.RemotePath("t.csv"))
	require.NoError(t, err)
	assert.Equal(t, local, remoteCopy)
	assert.Equal(t, "Update t.csv via referee app", mirror.Message(store.RemotePath("t.csv")))
}

func TestSave_SucceedsWhenMirrorWriteFails(t *testing.T) {
	store, mirror, dir := newTestStore(t)
	mirror.FailWrites(true)

	table := New(testColumns)
	table.Append(Row{"id": "1", "name": "Ana"})

	require.NoError(t, store.Save(context.Background(), "t.csv", table))

	_, err := os.ReadFile(filepath.Join(dir, "t.csv"))
	assert.NoError(t, err)
	assert.Equal(t, 0, mirror.Len())
}

func TestUpdate_MutateErrorAbortsWithoutWriting(t *testing.T) {
	store, mirror, dir := newTestStore(t)
	boom := errors.New("boom")

	err := store.Update(context.Background(), "t.csv", testColumns, func(tab *Table) error {
		tab.Append(Row{"id": "1"})
		return boom
	})

	assert.ErrorIs(t, err, boom)
	_, statErr := os.Stat(filepath.Join(dir, "t.csv"))
	assert.True(t, os.IsNotExist(statErr))
	assert.Equal(t, 0, mirror.Len())
}

func TestUpdate_PersistsMutation(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	err := store.Update(ctx, "t.csv", testColumns, func(tab *Table) error {
		tab.Append(Row{"id": "1", "name": "Ana"})
		return nil
	})
	require.NoError(t, err)

	table := store.Load(ctx, "t.csv", testColumns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Ana", table.Rows[0]["name"])
}

func TestWarmLocal_HydratesFromMirrorWithoutWritingBack(t *testing.T) {
	store, mirror, dir := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, mirror.Write(ctx, store.RemotePath("t.csv"), []byte("id,name\n1,remote\n"), "seed"))
	require.NoError(t, store.WarmLocal(ctx, "t.csv", testColumns))

	local, err := os.ReadFile(filepath.Join(dir, "t.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(local), "remote")
	// Only the seed write reached the mirror
	assert.Equal(t, "seed", mirror.Message(store.RemotePath("t.csv")))
}

func TestWarmLocal_LeavesExistingLocalFileAlone(t *testing.T) {
	store, mirror, dir := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "t.csv"), []byte("id,name\n1,local\n"), 0o644))
	require.NoError(t, mirror.Write(ctx, store.RemotePath("t.csv"), []byte("id,name\n1,remote\n"), "seed"))

	require.NoError(t, store.WarmLocal(ctx, "t.csv", testColumns))

	local, err := os.ReadFile(filepath.Join(dir, "t.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(local), "local")
}

func TestRemotePath_KeepsDataDirPrefix(t *testing.T) {
	store, _, _ := newTestStore(t)
	assert.Equal(t, "data/referees.csv", store.RemotePath("referees.csv"))
}
