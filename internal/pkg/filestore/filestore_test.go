package filestore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/refbase/internal/pkg/apperrors"
	"github.com/yigit/refbase/internal/pkg/remote"
)

func newTestStore(t *testing.T) (*Store, *remote.MemoryMirror, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	mirror := remote.NewMemoryMirror()
	store, err := NewStore(dir, mirror)
	require.NoError(t, err)
	return store, mirror, dir
}

func TestPut_StoresUnderOfficialIDWithOriginalExtension(t *testing.T) {
	store, mirror, dir := newTestStore(t)

	relPath, err := store.Put(context.Background(), KindPhoto, "ref-1", "Portrait Photo.JPG", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "photos/ref-1.jpg", relPath)
	local, err := os.ReadFile(filepath.Join(dir, "photos", "ref-1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(local))

	remoteCopy, err := mirror.Read(context.Background(), "data/photos/ref-1.jpg")
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(remoteCopy))
	assert.Equal(t, "Add photo ref-1.jpg via referee app", mirror.Message("data/photos/ref-1.jpg"))
}

func TestPut_ReuploadOverwritesAndRecordsUpdate(t *testing.T) {
	store, mirror, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Put(ctx, KindPhoto, "ref-1", "a.png", strings.NewReader("one"))
	require.NoError(t, err)
	relPath, err := store.Put(ctx, KindPhoto, "ref-1", "b.png", strings.NewReader("two"))
	require.NoError(t, err)

	assert.Equal(t, "photos/ref-1.png", relPath)
	assert.Equal(t, "Update photo ref-1.png via referee app", mirror.Message("data/photos/ref-1.png"))
}

func TestPut_RejectsUnsupportedExtension(t *testing.T) {
	store, _, _ := newTestStore(t)

	_, err := store.Put(context.Background(), KindPhoto, "ref-1", "cv.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFile)

	// Passports do accept pdf
	_, err = store.Put(context.Background(), KindPassport, "ref-1", "scan.pdf", strings.NewReader("x"))
	assert.NoError(t, err)
}

func TestPut_MirrorFailureStillStoresLocally(t *testing.T) {
	store, mirror, dir := newTestStore(t)
	mirror.FailWrites(true)

	relPath, err := store.Put(context.Background(), KindPhoto, "ref-1", "a.jpg", strings.NewReader("pic"))
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, filepath.FromSlash(relPath)))
	assert.NoError(t, statErr)
}

func TestOpen_ReturnsContentAndMimeType(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	relPath, err := store.Put(ctx, KindPhoto, "ref-1", "a.png", strings.NewReader("pic"))
	require.NoError(t, err)

	rc, mimeType, err := store.Open(ctx, relPath)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "pic", string(data))
	assert.Equal(t, "image/png", mimeType)
}

func TestOpen_PullsMissingFileFromMirror(t *testing.T) {
	store, mirror, dir := newTestStore(t)
	ctx := context.Background()

	// The file exists only remotely, as after a fresh checkout
	require.NoError(t, mirror.Write(ctx, "data/photos/ref-9.jpg", []byte("archived"), "seed"))

	rc, _, err := store.Open(ctx, "photos/ref-9.jpg")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "archived", string(data))

	_, statErr := os.Stat(filepath.Join(dir, "photos", "ref-9.jpg"))
	assert.NoError(t, statErr)
}

func TestOpen_EmptyPathIsNotFound(t *testing.T) {
	store, _, _ := newTestStore(t)
	_, _, err := store.Open(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrAttachmentNotFound)
}

func TestOpen_MissingEverywhereIsNotFound(t *testing.T) {
	store, _, _ := newTestStore(t)
	_, _, err := store.Open(context.Background(), "photos/nobody.jpg")
	assert.ErrorIs(t, err, apperrors.ErrAttachmentNotFound)
}

func TestDeleteLocal_RemovesLocalAndKeepsMirrorCopy(t *testing.T) {
	store, mirror, dir := newTestStore(t)
	ctx := context.Background()

	relPath, err := store.Put(ctx, KindPassport, "ref-1", "scan.pdf", strings.NewReader("scan"))
	require.NoError(t, err)

	require.NoError(t, store.DeleteLocal(relPath))

	_, statErr := os.Stat(filepath.Join(dir, filepath.FromSlash(relPath)))
	assert.True(t, os.IsNotExist(statErr))
	_, err = mirror.Read(ctx, "data/passports/ref-1.pdf")
	assert.NoError(t, err)
}

func TestDeleteLocal_IsIdempotent(t *testing.T) {
	store, _, _ := newTestStore(t)
	assert.NoError(t, store.DeleteLocal("photos/never-existed.jpg"))
	assert.NoError(t, store.DeleteLocal(""))
}
