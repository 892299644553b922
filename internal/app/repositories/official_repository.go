package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/refbase/internal/app/models"
	"github.com/yigit/refbase/internal/pkg/apperrors"
	"github.com/yigit/refbase/internal/pkg/filestore"
	"github.com/yigit/refbase/internal/pkg/tabular"
)

// OfficialsFile is the roster table name under the data directory.
const OfficialsFile = "referees.csv"

// OfficialColumns is the canonical column order of the roster table.
// Files missing any of these get them appended on load; columns beyond
// them are preserved untouched.
var OfficialColumns = []string{
	"ref_id",
	"first_name",
	"last_name",
	"gender",
	"nationality",
	"zone",
	"birthdate",
	"fivb_id",
	"email",
	"phone",
	"origin_airport",
	"position_type",
	"cc_role",
	"ref_level",
	"course_year",
	"photo_file",
	"passport_file",
	"shirt_size",
	"shorts_size",
	"active",
	"type",
}

// OfficialRepository handles roster table operations
type OfficialRepository struct {
	store *tabular.Store
	files *filestore.Store
}

// NewOfficialRepository creates a new OfficialRepository
func NewOfficialRepository(store *tabular.Store, files *filestore.Store) *OfficialRepository {
	return &OfficialRepository{store: store, files: files}
}

func rowToOfficial(row tabular.Row) models.Official {
	return models.Official{
		ID:            row["ref_id"],
		FirstName:     row["first_name"],
		LastName:      row["last_name"],
		Gender:        row["gender"],
		Nationality:   row["nationality"],
		Zone:          row["zone"],
		Birthdate:     row["birthdate"],
		FIVBID:        row["fivb_id"],
		Email:         row["email"],
		Phone:         row["phone"],
		OriginAirport: row["origin_airport"],
		PositionType:  row["position_type"],
		CCRole:        row["cc_role"],
		RefLevel:      row["ref_level"],
		CourseYear:    row["course_year"],
		PhotoFile:     row["photo_file"],
		PassportFile:  row["passport_file"],
		ShirtSize:     row["shirt_size"],
		ShortsSize:    row["shorts_size"],
		Active:        models.ParseBool(row["active"], false),
		Type:          row["type"],
	}
}

// writeOfficial sets the known cells of row from o. Writing cell by cell
// keeps columns outside OfficialColumns intact on update.
func writeOfficial(row tabular.Row, o *models.Official) {
	row["ref_id"] = o.ID
	row["first_name"] = o.FirstName
	row["last_name"] = o.LastName
	row["gender"] = o.Gender
	row["nationality"] = o.Nationality
	row["zone"] = o.Zone
	row["birthdate"] = o.Birthdate
	row["fivb_id"] = o.FIVBID
	row["email"] = o.Email
	row["phone"] = o.Phone
	row["origin_airport"] = o.OriginAirport
	row["position_type"] = o.PositionType
	row["cc_role"] = o.CCRole
	row["ref_level"] = o.RefLevel
	row["course_year"] = o.CourseYear
	row["photo_file"] = o.PhotoFile
	row["passport_file"] = o.PassportFile
	row["shirt_size"] = o.ShirtSize
	row["shorts_size"] = o.ShortsSize
	row["active"] = models.FormatBool(o.Active)
	row["type"] = o.Type
}

// syncAttachments pulls attachment files the row references but the
// local disk lacks, so a fresh deployment repopulates from the mirror as
// the roster is read. Best-effort by contract of SyncLocal.
func (r *OfficialRepository) syncAttachments(ctx context.Context, o *models.Official) {
	r.files.SyncLocal(ctx, o.PhotoFile)
	r.files.SyncLocal(ctx, o.PassportFile)
}

// GetAllOfficials retrieves every official in file order
func (r *OfficialRepository) GetAllOfficials(ctx context.Context) ([]models.Official, error) {
	t := r.store.Load(ctx, OfficialsFile, OfficialColumns)
	officials := make([]models.Official, 0, len(t.Rows))
	for _, row := range t.Rows {
		o := rowToOfficial(row)
		r.syncAttachments(ctx, &o)
		officials = append(officials, o)
	}
	return officials, nil
}

// GetOfficialByID retrieves an official by ID
func (r *OfficialRepository) GetOfficialByID(ctx context.Context, id string) (*models.Official, error) {
	t := r.store.Load(ctx, OfficialsFile, OfficialColumns)
	row := t.Find(func(row tabular.Row) bool { return row["ref_id"] == id })
	if row == nil {
		return nil, fmt.Errorf("%w: official %s", apperrors.ErrOfficialNotFound, id)
	}
	o := rowToOfficial(row)
	r.syncAttachments(ctx, &o)
	return &o, nil
}

// GetOfficialByFIVBID retrieves an official by FIVB number. Officials
// without a FIVB number never match.
func (r *OfficialRepository) GetOfficialByFIVBID(ctx context.Context, fivbID string) (*models.Official, error) {
	if fivbID == "" {
		return nil, apperrors.ErrOfficialNotFound
	}
	t := r.store.Load(ctx, OfficialsFile, OfficialColumns)
	row := t.Find(func(row tabular.Row) bool { return row["fivb_id"] == fivbID })
	if row == nil {
		return nil, fmt.Errorf("%w: fivb id %s", apperrors.ErrOfficialNotFound, fivbID)
	}
	o := rowToOfficial(row)
	r.syncAttachments(ctx, &o)
	return &o, nil
}

// CreateOfficial appends a new official
func (r *OfficialRepository) CreateOfficial(ctx context.Context, o *models.Official) error {
	return r.store.Update(ctx, OfficialsFile, OfficialColumns, func(t *tabular.Table) error {
		row := tabular.Row{}
		writeOfficial(row, o)
		t.Append(row)
		return nil
	})
}

// UpdateOfficial replaces the stored fields of an existing official
func (r *OfficialRepository) UpdateOfficial(ctx context.Context, o *models.Official) error {
	return r.store.Update(ctx, OfficialsFile, OfficialColumns, func(t *tabular.Table) error {
		row := t.Find(func(row tabular.Row) bool { return row["ref_id"] == o.ID })
		if row == nil {
			return fmt.Errorf("%w: official %s", apperrors.ErrOfficialNotFound, o.ID)
		}
		writeOfficial(row, o)
		return nil
	})
}

// AddOfficials appends a batch in one read-modify-write cycle. Imports go
// through here so a big sheet costs one save instead of one per row.
func (r *OfficialRepository) AddOfficials(ctx context.Context, officials []models.Official) error {
	return r.store.Update(ctx, OfficialsFile, OfficialColumns, func(t *tabular.Table) error {
		for i := range officials {
			row := tabular.Row{}
			writeOfficial(row, &officials[i])
			t.Append(row)
		}
		return nil
	})
}

// DeleteOfficial removes an official row
func (r *OfficialRepository) DeleteOfficial(ctx context.Context, id string) error {
	return r.store.Update(ctx, OfficialsFile, OfficialColumns, func(t *tabular.Table) error {
		if n := t.Delete(func(row tabular.Row) bool { return row["ref_id"] == id }); n == 0 {
			return fmt.Errorf("%w: official %s", apperrors.ErrOfficialNotFound, id)
		}
		return nil
	})
}

// SetPhotoFile records the stored photo path of an official
func (r *OfficialRepository) SetPhotoFile(ctx context.Context, id, relPath string) error {
	return r.setCell(ctx, id, "photo_file", relPath)
}

// SetPassportFile records the stored passport path of an official
func (r *OfficialRepository) SetPassportFile(ctx context.Context, id, relPath string) error {
	return r.setCell(ctx, id, "passport_file", relPath)
}

func (r *OfficialRepository) setCell(ctx context.Context, id, column, value string) error {
	return r.store.Update(ctx, OfficialsFile, OfficialColumns, func(t *tabular.Table) error {
		row := t.Find(func(row tabular.Row) bool { return row["ref_id"] == id })
		if row == nil {
			return fmt.Errorf("%w: official %s", apperrors.ErrOfficialNotFound, id)
		}
		row[column] = value
		return nil
	})
}
