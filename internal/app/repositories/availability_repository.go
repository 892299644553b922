package repositories

import (
	"context"

	"github.com/yigit/refbase/internal/app/models"
	"github.com/yigit/refbase/internal/pkg/helpers"
	"github.com/yigit/refbase/internal/pkg/tabular"
)

// AvailabilityFile is the availability table name under the data directory.
const AvailabilityFile = "availability.csv"

// AvailabilityColumns is the canonical column order of the availability table.
var AvailabilityColumns = []string{
	"avail_id",
	"ref_id",
	"season",
	"event_id",
	"available",
	"airfare_estimate",
	"timestamp",
}

// AvailabilityRepository handles availability table operations
type AvailabilityRepository struct {
	store *tabular.Store
}

// NewAvailabilityRepository creates a new AvailabilityRepository
func NewAvailabilityRepository(store *tabular.Store) *AvailabilityRepository {
	return &AvailabilityRepository{store: store}
}

func rowToAvailability(row tabular.Row) models.Availability {
	return models.Availability{
		ID:              row["avail_id"],
		OfficialID:      row["ref_id"],
		Season:          row["season"],
		EventID:         row["event_id"],
		Available:       models.ParseBool(row["available"], false),
		AirfareEstimate: row["airfare_estimate"],
		Timestamp:       helpers.ParseTimestamp(row["timestamp"]),
	}
}

func writeAvailability(row tabular.Row, a *models.Availability) {
	row["avail_id"] = a.ID
	row["ref_id"] = a.OfficialID
	row["season"] = a.Season
	row["event_id"] = a.EventID
	row["available"] = models.FormatBool(a.Available)
	row["airfare_estimate"] = a.AirfareEstimate
	row["timestamp"] = helpers.FormatTimestamp(a.Timestamp)
}

// GetAllAvailability retrieves every answer in file order
func (r *AvailabilityRepository) GetAllAvailability(ctx context.Context) ([]models.Availability, error) {
	t := r.store.Load(ctx, AvailabilityFile, AvailabilityColumns)
	entries := make([]models.Availability, 0, len(t.Rows))
	for _, row := range t.Rows {
		entries = append(entries, rowToAvailability(row))
	}
	return entries, nil
}

// GetAvailabilityForOfficial retrieves one official's answers, optionally
// narrowed to a season.
func (r *AvailabilityRepository) GetAvailabilityForOfficial(ctx context.Context, officialID, season string) ([]models.Availability, error) {
	t := r.store.Load(ctx, AvailabilityFile, AvailabilityColumns)
	entries := make([]models.Availability, 0)
	for _, row := range t.Rows {
		if row["ref_id"] != officialID {
			continue
		}
		if season != "" && row["season"] != season {
			continue
		}
		entries = append(entries, rowToAvailability(row))
	}
	return entries, nil
}

// ReplaceForSeason swaps one official's answers for a season with the
// supplied entries in a single write. Every prior row for the same
// official and season is dropped first; answers from other seasons stay
// untouched.
func (r *AvailabilityRepository) ReplaceForSeason(ctx context.Context, officialID, season string, entries []models.Availability) error {
	return r.store.Update(ctx, AvailabilityFile, AvailabilityColumns, func(t *tabular.Table) error {
		t.Delete(func(row tabular.Row) bool {
			return row["ref_id"] == officialID && row["season"] == season
		})
		for i := range entries {
			row := tabular.Row{}
			writeAvailability(row, &entries[i])
			t.Append(row)
		}
		return nil
	})
}

// AddAvailability appends a single answer without touching existing rows.
func (r *AvailabilityRepository) AddAvailability(ctx context.Context, a *models.Availability) error {
	return r.store.Update(ctx, AvailabilityFile, AvailabilityColumns, func(t *tabular.Table) error {
		row := tabular.Row{}
		writeAvailability(row, a)
		t.Append(row)
		return nil
	})
}

// DeleteByOfficial removes every answer of one official. Returns the
// number of rows removed.
func (r *AvailabilityRepository) DeleteByOfficial(ctx context.Context, officialID string) (int, error) {
	return r.deleteMatching(ctx, func(row tabular.Row) bool { return row["ref_id"] == officialID })
}

// DeleteByEvent removes every answer referencing one event. Returns the
// number of rows removed.
func (r *AvailabilityRepository) DeleteByEvent(ctx context.Context, eventID string) (int, error) {
	return r.deleteMatching(ctx, func(row tabular.Row) bool { return row["event_id"] == eventID })
}

func (r *AvailabilityRepository) deleteMatching(ctx context.Context, match func(tabular.Row) bool) (int, error) {
	removed := 0
	err := r.store.Update(ctx, AvailabilityFile, AvailabilityColumns, func(t *tabular.Table) error {
		removed = t.Delete(match)
		return nil
	})
	return removed, err
}
