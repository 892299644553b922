package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/yigit/refbase/internal/app/models"
	"github.com/yigit/refbase/internal/app/models/dto"
	"github.com/yigit/refbase/internal/app/repositories"
	"github.com/yigit/refbase/internal/pkg/apperrors"
	"github.com/yigit/refbase/internal/pkg/auth"
)

// managedImportColumns are owned by the application and never read from
// a sheet: record ids are minted here and attachments go through their
// own endpoints.
var managedImportColumns = map[string]bool{
	"ref_id":        true,
	"photo_file":    true,
	"passport_file": true,
}

// parseActiveCell reads the active column. Sheets from the field arrive
// with all kinds of markers; only an explicit no counts as inactive.
func parseActiveCell(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "false", "no", "n", "0":
		return false
	}
	return true
}

// resetInvalid blanks enum cells that match nothing; a bad cell should
// not sink the whole row.
func resetInvalid(v *string, allowed []string) {
	if !models.InList(*v, allowed) {
		*v = ""
	}
}

func normalizeHeader(cell string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(cell)), " ", "_")
}

// readSheetRows decodes an uploaded roster sheet into raw rows. CSV and
// XLSX are accepted, picked by file extension.
func readSheetRows(filename string, r io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
		}
		return rows, nil
	case ".xlsx":
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
		}
		defer f.Close()
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", apperrors.ErrValidationFailed)
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("%w: expected a .csv or .xlsx file", apperrors.ErrUnsupportedFile)
	}
}

// ImportOfficials adds the rows of an uploaded roster sheet as new
// officials. Rows without any name are skipped, and so are rows whose
// FIVB number already belongs to an official on file or to an earlier
// row of the same sheet; enum cells with unknown values are blanked
// rather than rejected. The whole batch is written in one save.
func (s *officialServiceImpl) ImportOfficials(ctx context.Context, session auth.Session, filename string, r io.Reader) (*dto.ImportReportResponse, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	rows, err := readSheetRows(filename, r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet has no header row", apperrors.ErrValidationFailed)
	}

	recognized := make(map[string]bool, len(repositories.OfficialColumns))
	for _, col := range repositories.OfficialColumns {
		recognized[col] = true
	}

	header := make([]string, len(rows[0]))
	var ignored []string
	named := make(map[string]bool, len(rows[0]))
	for i, cell := range rows[0] {
		col := normalizeHeader(cell)
		named[col] = true
		if !recognized[col] || managedImportColumns[col] {
			if col != "" {
				ignored = append(ignored, col)
			}
			col = ""
		}
		header[i] = col
	}
	if !named["first_name"] || !named["last_name"] {
		return nil, fmt.Errorf("%w: first_name and last_name columns are required", apperrors.ErrValidationFailed)
	}

	report := &dto.ImportReportResponse{}
	if len(ignored) > 0 {
		report.Notes = append(report.Notes, "ignored columns: "+strings.Join(ignored, ", "))
	}

	existing, err := s.officialRepo.GetAllOfficials(ctx)
	if err != nil {
		return nil, err
	}
	onFile := make(map[string]bool, len(existing))
	for i := range existing {
		if existing[i].FIVBID != "" {
			onFile[existing[i].FIVBID] = true
		}
	}

	batch := make([]models.Official, 0, len(rows)-1)
	for i, row := range rows[1:] {
		values := make(map[string]string)
		for j, cell := range row {
			if j < len(header) && header[j] != "" {
				values[header[j]] = strings.TrimSpace(cell)
			}
		}

		if values["first_name"] == "" && values["last_name"] == "" {
			report.SkippedNoName++
			report.Notes = append(report.Notes, fmt.Sprintf("row %d: no name, skipped", i+2))
			continue
		}

		if fid := values["fivb_id"]; fid != "" {
			if onFile[fid] {
				report.SkippedDuplicates++
				report.Notes = append(report.Notes, fmt.Sprintf("row %d: fivb_id %s already on file, skipped", i+2, fid))
				continue
			}
			onFile[fid] = true
		}

		o := models.Official{ID: uuid.NewString(), Active: true}

		apply := func(col string, dst *string) {
			if v, ok := values[col]; ok {
				*dst = v
			}
		}
		apply("first_name", &o.FirstName)
		apply("last_name", &o.LastName)
		apply("gender", &o.Gender)
		apply("nationality", &o.Nationality)
		apply("zone", &o.Zone)
		apply("birthdate", &o.Birthdate)
		apply("fivb_id", &o.FIVBID)
		apply("email", &o.Email)
		apply("phone", &o.Phone)
		apply("origin_airport", &o.OriginAirport)
		apply("position_type", &o.PositionType)
		apply("cc_role", &o.CCRole)
		apply("ref_level", &o.RefLevel)
		apply("course_year", &o.CourseYear)
		apply("shirt_size", &o.ShirtSize)
		apply("shorts_size", &o.ShortsSize)
		apply("type", &o.Type)
		if v, ok := values["active"]; ok {
			o.Active = parseActiveCell(v)
		}

		resetInvalid(&o.Gender, models.Genders)
		resetInvalid(&o.Zone, models.Zones)
		resetInvalid(&o.PositionType, models.PositionTypes)
		resetInvalid(&o.CCRole, models.CCRoles)
		resetInvalid(&o.RefLevel, models.RefLevels)
		resetInvalid(&o.Type, models.RefTypes)
		resetInvalid(&o.ShirtSize, models.UniformSizes)
		resetInvalid(&o.ShortsSize, models.UniformSizes)

		batch = append(batch, o)
		report.Added++
	}

	if len(batch) > 0 {
		if err := s.officialRepo.AddOfficials(ctx, batch); err != nil {
			return nil, fmt.Errorf("writing imported officials: %w", err)
		}
	}
	return report, nil
}
