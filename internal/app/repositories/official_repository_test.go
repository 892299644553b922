package repositories

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/refbase/internal/app/models"
	"github.com/yigit/refbase/internal/pkg/apperrors"
	"github.com/yigit/refbase/internal/pkg/filestore"
	"github.com/yigit/refbase/internal/pkg/remote"
	"github.com/yigit/refbase/internal/pkg/tabular"
)

func newRepoStore(t *testing.T) (*tabular.Store, *remote.MemoryMirror, string) {
	t.Helper()
	dataDir := filepath.Join(t.TempDir(), "data")
	mirror := remote.NewMemoryMirror()
	store, err := tabular.NewStore(dataDir, mirror)
	require.NoError(t, err)
	return store, mirror, dataDir
}

func newOfficialRepo(t *testing.T, store *tabular.Store, dataDir string) *OfficialRepository {
	t.Helper()
	files, err := filestore.NewStore(dataDir, remote.Disabled())
	require.NoError(t, err)
	return NewOfficialRepository(store, files)
}

func seedRosterFile(t *testing.T, dataDir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, OfficialsFile), []byte(content), 0o644))
}

func readRosterFile(t *testing.T, dataDir string) [][]string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dataDir, OfficialsFile))
	require.NoError(t, err)
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)
	return records
}

func TestOfficialRepository_RoundTrip(t *testing.T) {
	store, _, dataDir := newRepoStore(t)
	repo := newOfficialRepo(t, store, dataDir)
	ctx := context.Background()

	official := &models.Official{
		ID: "ref-1", FirstName: "Ana", LastName: "Silva",
		Zone: "SEA", RefLevel: "FIVB", Active: true,
	}
	require.NoError(t, repo.CreateOfficial(ctx, official))

	stored, err := repo.GetOfficialByID(ctx, "ref-1")
	require.NoError(t, err)
	assert.Equal(t, official, stored)

	official.LastName = "Silva-Diaz"
	official.Active = false
	require.NoError(t, repo.UpdateOfficial(ctx, official))

	stored, err = repo.GetOfficialByID(ctx, "ref-1")
	require.NoError(t, err)
	assert.Equal(t, "Silva-Diaz", stored.LastName)
	assert.False(t, stored.Active)

	require.NoError(t, repo.DeleteOfficial(ctx, "ref-1"))
	_, err = repo.GetOfficialByID(ctx, "ref-1")
	assert.ErrorIs(t, err, apperrors.ErrOfficialNotFound)
}

func TestOfficialRepository_PreservesColumnsItDoesNotKnow(t *testing.T) {
	store, _, dataDir := newRepoStore(t)
	seedRosterFile(t, dataDir,
		"ref_id,first_name,last_name,notes\n"+
			"ref-1,Ana,Silva,knows the venue\n")
	repo := newOfficialRepo(t, store, dataDir)
	ctx := context.Background()

	official, err := repo.GetOfficialByID(ctx, "ref-1")
	require.NoError(t, err)
	official.Email = "ana@example.org"
	require.NoError(t, repo.UpdateOfficial(ctx, official))

	records := readRosterFile(t, dataDir)
	require.Len(t, records, 2)

	header := records[0]
	notesAt := -1
	for i, col := range header {
		if col == "notes" {
			notesAt = i
		}
	}
	require.NotEqual(t, -1, notesAt, "a column this code never heard of survives the rewrite")
	assert.Equal(t, "knows the venue", records[1][notesAt])

	// The short legacy header got completed to the full column set.
	for _, col := range OfficialColumns {
		assert.Contains(t, header, col)
	}
}

func TestOfficialRepository_BlankActiveCellReadsInactive(t *testing.T) {
	store, _, dataDir := newRepoStore(t)
	seedRosterFile(t, dataDir,
		"ref_id,first_name,last_name,active\n"+
			"ref-1,Ana,Silva,\n"+
			"ref-2,Bo,Chen,True\n")
	repo := newOfficialRepo(t, store, dataDir)

	officials, err := repo.GetAllOfficials(context.Background())
	require.NoError(t, err)
	require.Len(t, officials, 2)
	assert.False(t, officials[0].Active, "a blank cell does not count as active")
	assert.True(t, officials[1].Active)
}

func TestOfficialRepository_AddOfficials(t *testing.T) {
	store, mirror, dataDir := newRepoStore(t)
	repo := newOfficialRepo(t, store, dataDir)
	ctx := context.Background()

	require.NoError(t, repo.CreateOfficial(ctx, &models.Official{ID: "ref-1", FirstName: "Ana", LastName: "Silva"}))

	batch := []models.Official{
		{ID: "ref-2", FirstName: "Bo", LastName: "Chen", Active: true},
		{ID: "ref-3", FirstName: "Cy", LastName: "Diaz", Active: true},
	}
	require.NoError(t, repo.AddOfficials(ctx, batch))

	officials, err := repo.GetAllOfficials(ctx)
	require.NoError(t, err)
	require.Len(t, officials, 3, "the whole batch lands in one save")
	assert.Equal(t, "ref-2", officials[1].ID)
	assert.Equal(t, "ref-3", officials[2].ID)

	assert.Equal(t, "Update referees.csv via referee app", mirror.Message("data/"+OfficialsFile))
}

func TestOfficialRepository_FIVBLookupIgnoresBlankNumbers(t *testing.T) {
	store, _, dataDir := newRepoStore(t)
	repo := newOfficialRepo(t, store, dataDir)
	ctx := context.Background()

	require.NoError(t, repo.CreateOfficial(ctx, &models.Official{ID: "ref-1", LastName: "Silva"}))
	require.NoError(t, repo.CreateOfficial(ctx, &models.Official{ID: "ref-2", LastName: "Chen", FIVBID: "77421"}))

	found, err := repo.GetOfficialByFIVBID(ctx, "77421")
	require.NoError(t, err)
	assert.Equal(t, "ref-2", found.ID)

	_, err = repo.GetOfficialByFIVBID(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrOfficialNotFound,
		"officials without a number must not match an empty lookup")
}
