package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yigit/refbase/internal/app/models"
	"github.com/yigit/refbase/internal/app/models/dto"
	"github.com/yigit/refbase/internal/pkg/apperrors"
	"github.com/yigit/refbase/internal/pkg/auth"
)

func importCSV(t *testing.T, env *testEnv, content string) (*dto.ImportReportResponse, []models.Official) {
	t.Helper()
	ctx := context.Background()

	report, err := env.officials.ImportOfficials(ctx, adminSession(), "roster.csv", strings.NewReader(content))
	require.NoError(t, err)

	officials, err := env.repos.OfficialRepository.GetAllOfficials(ctx)
	require.NoError(t, err)
	return report, officials
}

func TestImportOfficials_CreatesNewRows(t *testing.T) {
	env := newTestEnv(t)

	report, officials := importCSV(t, env,
		"first_name,last_name,fivb_id,ref_level\n"+
			"Ana,Silva,77421,FIVB\n"+
			"Bo,Chen,,National\n")

	assert.Equal(t, 2, report.Added)
	assert.Equal(t, 0, report.SkippedNoName)
	assert.Equal(t, 0, report.SkippedDuplicates)

	require.Len(t, officials, 2)
	assert.NotEmpty(t, officials[0].ID)
	assert.Equal(t, "Ana", officials[0].FirstName)
	assert.Equal(t, "FIVB", officials[0].RefLevel)
	assert.True(t, officials[0].Active, "imported rows default to active")
}

func TestImportOfficials_SkipsNumbersAlreadyOnFile(t *testing.T) {
	env := newTestEnv(t)
	existing := env.addOfficial(t, models.Official{
		FirstName: "Ana", LastName: "Silva", FIVBID: "77421", Zone: "SEA", Active: true,
	})

	report, officials := importCSV(t, env,
		"first_name,last_name,fivb_id,ref_level\n"+
			"Ana,Silva-Diaz,77421,FIVB\n"+
			"Ana,Silva,77421,National\n")

	assert.Equal(t, 0, report.Added)
	assert.Equal(t, 2, report.SkippedDuplicates)
	assert.Contains(t, report.Notes, "row 2: fivb_id 77421 already on file, skipped")

	require.Len(t, officials, 1)
	assert.Equal(t, existing.ID, officials[0].ID)
	assert.Equal(t, "Silva", officials[0].LastName, "skipped rows change nothing")
	assert.Equal(t, "SEA", officials[0].Zone)
}

func TestImportOfficials_SkipsNamelessRows(t *testing.T) {
	env := newTestEnv(t)

	report, officials := importCSV(t, env,
		"first_name,last_name,email\n"+
			",,ghost@example.org\n"+
			"Ana,Silva,ana@example.org\n")

	assert.Equal(t, 1, report.Added)
	assert.Equal(t, 1, report.SkippedNoName)
	assert.Contains(t, report.Notes, "row 2: no name, skipped")
	assert.Len(t, officials, 1)
}

func TestImportOfficials_BlanksUnknownEnumCells(t *testing.T) {
	env := newTestEnv(t)

	report, officials := importCSV(t, env,
		"first_name,last_name,gender,ref_level,shirt_size\n"+
			"Ana,Silva,Alien,FIVB,Huge\n")

	assert.Equal(t, 1, report.Added)
	require.Len(t, officials, 1)
	assert.Empty(t, officials[0].Gender, "unknown enum cells reset instead of failing the row")
	assert.Equal(t, "FIVB", officials[0].RefLevel)
	assert.Empty(t, officials[0].ShirtSize)
}

func TestImportOfficials_ReadsFieldMarkersInActiveColumn(t *testing.T) {
	env := newTestEnv(t)

	_, officials := importCSV(t, env,
		"first_name,last_name,active\n"+
			"Ana,Silva,x\n"+
			"Bo,Chen,1\n"+
			"Cy,Diaz,no\n"+
			"Dana,Au,N\n"+
			"Eli,Novak,\n")

	require.Len(t, officials, 5)
	assert.True(t, officials[0].Active, "an unrecognized marker still means active")
	assert.True(t, officials[1].Active)
	assert.False(t, officials[2].Active)
	assert.False(t, officials[3].Active)
	assert.True(t, officials[4].Active, "an empty active cell means active")
}

func TestImportOfficials_NormalizesPrettyHeaders(t *testing.T) {
	env := newTestEnv(t)

	report, officials := importCSV(t, env,
		"First Name,Last Name,FIVB ID\n"+
			"Ana,Silva,77421\n")

	assert.Equal(t, 1, report.Added)
	require.Len(t, officials, 1)
	assert.Equal(t, "77421", officials[0].FIVBID)
}

func TestImportOfficials_IgnoresUnknownAndManagedColumns(t *testing.T) {
	env := newTestEnv(t)

	report, officials := importCSV(t, env,
		"ref_id,first_name,last_name,photo_file,coffee_preference\n"+
			"sheet-id,Ana,Silva,photos/evil.png,espresso\n")

	require.Len(t, report.Notes, 1)
	assert.Equal(t, "ignored columns: ref_id, photo_file, coffee_preference", report.Notes[0])

	require.Len(t, officials, 1)
	assert.NotEqual(t, "sheet-id", officials[0].ID, "record ids are minted, never read from a sheet")
	assert.Empty(t, officials[0].PhotoFile, "sheets cannot touch attachment paths")
}

func TestImportOfficials_RepeatedFIVBNumberWithinSheet(t *testing.T) {
	env := newTestEnv(t)

	report, officials := importCSV(t, env,
		"first_name,last_name,fivb_id,email\n"+
			"Ana,Silva,77421,ana@example.org\n"+
			"Ana,Silva,77421,ana.two@example.org\n")

	assert.Equal(t, 1, report.Added, "a repeated number must not mint a second official")
	assert.Equal(t, 1, report.SkippedDuplicates)
	require.Len(t, officials, 1)
	assert.Equal(t, "ana@example.org", officials[0].Email, "the first row wins")
}

func TestImportOfficials_ReadsXLSXWorkbooks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"first_name", "last_name", "zone"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Ana", "Silva", "SEA"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	report, err := env.officials.ImportOfficials(ctx, adminSession(), "roster.xlsx", buf)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Added)

	officials, err := env.repos.OfficialRepository.GetAllOfficials(ctx)
	require.NoError(t, err)
	require.Len(t, officials, 1)
	assert.Equal(t, "SEA", officials[0].Zone)
}

func TestImportOfficials_RejectsOtherFileTypes(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.officials.ImportOfficials(context.Background(), adminSession(), "roster.txt", strings.NewReader("whatever"))
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFile)
}

func TestImportOfficials_RejectsEmptySheet(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.officials.ImportOfficials(context.Background(), adminSession(), "roster.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestImportOfficials_RequiresNameColumns(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.officials.ImportOfficials(context.Background(), adminSession(), "roster.csv",
		strings.NewReader("fivb_id,zone\n77421,SEA\n"))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestImportOfficials_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.officials.ImportOfficials(context.Background(), auth.Anonymous(), "roster.csv", strings.NewReader("first_name\nAna\n"))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
