package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/refbase/internal/app/models"
	"github.com/yigit/refbase/internal/pkg/apperrors"
	"github.com/yigit/refbase/internal/pkg/helpers"
	"github.com/yigit/refbase/internal/pkg/tabular"
)

// EventsFile is the event table name under the data directory.
const EventsFile = "events.csv"

// EventColumns is the canonical column order of the event table.
var EventColumns = []string{
	"event_id",
	"season",
	"start_date",
	"end_date",
	"event_name",
	"location",
	"dest_airport",
	"arrival_date",
	"departure_date",
	"requires_availability",
}

// EventRepository handles event table operations
type EventRepository struct {
	store *tabular.Store
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(store *tabular.Store) *EventRepository {
	return &EventRepository{store: store}
}

// Date cells are parsed on read and re-rendered on write, so malformed
// values degrade to empty cells instead of poisoning sorts and reports.
func rowToEvent(row tabular.Row) models.Event {
	return models.Event{
		ID:                   row["event_id"],
		Season:               row["season"],
		StartDate:            models.NewDate(helpers.ParseDate(row["start_date"])),
		EndDate:              models.NewDate(helpers.ParseDate(row["end_date"])),
		Name:                 row["event_name"],
		Location:             row["location"],
		DestAirport:          row["dest_airport"],
		ArrivalDate:          models.NewDate(helpers.ParseDate(row["arrival_date"])),
		DepartureDate:        models.NewDate(helpers.ParseDate(row["departure_date"])),
		RequiresAvailability: models.ParseBool(row["requires_availability"], true),
	}
}

func writeEvent(row tabular.Row, e *models.Event) {
	row["event_id"] = e.ID
	row["season"] = e.Season
	row["start_date"] = e.StartDate.String()
	row["end_date"] = e.EndDate.String()
	row["event_name"] = e.Name
	row["location"] = e.Location
	row["dest_airport"] = e.DestAirport
	row["arrival_date"] = e.ArrivalDate.String()
	row["departure_date"] = e.DepartureDate.String()
	row["requires_availability"] = models.FormatBool(e.RequiresAvailability)
}

// GetAllEvents retrieves every event in file order
func (r *EventRepository) GetAllEvents(ctx context.Context) ([]models.Event, error) {
	t := r.store.Load(ctx, EventsFile, EventColumns)
	events := make([]models.Event, 0, len(t.Rows))
	for _, row := range t.Rows {
		events = append(events, rowToEvent(row))
	}
	return events, nil
}

// GetEventByID retrieves an event by ID
func (r *EventRepository) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	t := r.store.Load(ctx, EventsFile, EventColumns)
	row := t.Find(func(row tabular.Row) bool { return row["event_id"] == id })
	if row == nil {
		return nil, fmt.Errorf("%w: event %s", apperrors.ErrEventNotFound, id)
	}
	e := rowToEvent(row)
	return &e, nil
}

// CreateEvent appends a new event
func (r *EventRepository) CreateEvent(ctx context.Context, e *models.Event) error {
	return r.store.Update(ctx, EventsFile, EventColumns, func(t *tabular.Table) error {
		row := tabular.Row{}
		writeEvent(row, e)
		t.Append(row)
		return nil
	})
}

// UpdateEvent replaces the stored fields of an existing event
func (r *EventRepository) UpdateEvent(ctx context.Context, e *models.Event) error {
	return r.store.Update(ctx, EventsFile, EventColumns, func(t *tabular.Table) error {
		row := t.Find(func(row tabular.Row) bool { return row["event_id"] == e.ID })
		if row == nil {
			return fmt.Errorf("%w: event %s", apperrors.ErrEventNotFound, e.ID)
		}
		writeEvent(row, e)
		return nil
	})
}

// DeleteEvent removes an event row
func (r *EventRepository) DeleteEvent(ctx context.Context, id string) error {
	return r.store.Update(ctx, EventsFile, EventColumns, func(t *tabular.Table) error {
		if n := t.Delete(func(row tabular.Row) bool { return row["event_id"] == id }); n == 0 {
			return fmt.Errorf("%w: event %s", apperrors.ErrEventNotFound, id)
		}
		return nil
	})
}
