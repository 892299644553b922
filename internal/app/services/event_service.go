package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/yigit/refbase/internal/app/models"
	"github.com/yigit/refbase/internal/app/models/dto"
	"github.com/yigit/refbase/internal/app/repositories"
	"github.com/yigit/refbase/internal/pkg/apperrors"
	"github.com/yigit/refbase/internal/pkg/auth"
	"github.com/yigit/refbase/internal/pkg/helpers"
)

// EventService defines the interface for event calendar operations
type EventService interface {
	GetAllEvents(ctx context.Context, season string) ([]models.Event, error)
	GetEventByID(ctx context.Context, id string) (*models.Event, error)
	GetSeasons(ctx context.Context) ([]string, error)
	CreateEvent(ctx context.Context, session auth.Session, req *dto.EventRequest) (*models.Event, error)
	UpdateEvent(ctx context.Context, session auth.Session, id string, req *dto.EventRequest) (*models.Event, error)
}

// eventServiceImpl implements the EventService interface
type eventServiceImpl struct {
	eventRepo *repositories.EventRepository
}

// NewEventService creates a new event service instance
func NewEventService(eventRepo *repositories.EventRepository) EventService {
	return &eventServiceImpl{
		eventRepo: eventRepo,
	}
}

// parseDateField converts a request date string into a Date. Empty means
// unset; anything non-empty must parse.
func parseDateField(value, field string) (models.Date, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return models.Date{}, nil
	}
	t := helpers.ParseDate(v)
	if t.IsZero() {
		return models.Date{}, fmt.Errorf("%w: %s is not a valid date", apperrors.ErrValidationFailed, field)
	}
	return models.NewDate(t), nil
}

// eventFromRequest validates and converts request data into an event
func eventFromRequest(req *dto.EventRequest) (*models.Event, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: event name cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.Season) == "" {
		return nil, fmt.Errorf("%w: season cannot be empty", apperrors.ErrValidationFailed)
	}

	start, err := parseDateField(req.StartDate, "startDate")
	if err != nil {
		return nil, err
	}
	end, err := parseDateField(req.EndDate, "endDate")
	if err != nil {
		return nil, err
	}
	arrival, err := parseDateField(req.ArrivalDate, "arrivalDate")
	if err != nil {
		return nil, err
	}
	departure, err := parseDateField(req.DepartureDate, "departureDate")
	if err != nil {
		return nil, err
	}

	if !start.IsZero() && !end.IsZero() && end.Time.Before(start.Time) {
		return nil, fmt.Errorf("%w: end date is before start date", apperrors.ErrValidationFailed)
	}
	if !arrival.IsZero() && !departure.IsZero() && departure.Time.Before(arrival.Time) {
		return nil, fmt.Errorf("%w: departure date is before arrival date", apperrors.ErrValidationFailed)
	}

	requires := true
	if req.RequiresAvailability != nil {
		requires = *req.RequiresAvailability
	}

	return &models.Event{
		Season:               strings.TrimSpace(req.Season),
		StartDate:            start,
		EndDate:              end,
		Name:                 strings.TrimSpace(req.Name),
		Location:             strings.TrimSpace(req.Location),
		DestAirport:          strings.TrimSpace(req.DestAirport),
		ArrivalDate:          arrival,
		DepartureDate:        departure,
		RequiresAvailability: requires,
	}, nil
}

// sortEvents orders events for display: season, then start date, then name
func sortEvents(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Season != events[j].Season {
			return events[i].Season < events[j].Season
		}
		if !events[i].StartDate.Equal(events[j].StartDate.Time) {
			return events[i].StartDate.Before(events[j].StartDate)
		}
		return events[i].Name < events[j].Name
	})
}

// GetAllEvents retrieves events, optionally narrowed to one season
func (s *eventServiceImpl) GetAllEvents(ctx context.Context, season string) ([]models.Event, error) {
	events, err := s.eventRepo.GetAllEvents(ctx)
	if err != nil {
		return nil, err
	}
	if season != "" {
		filtered := events[:0]
		for _, e := range events {
			if e.Season == season {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}
	sortEvents(events)
	return events, nil
}

// GetEventByID retrieves an event by ID
func (s *eventServiceImpl) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	return s.eventRepo.GetEventByID(ctx, id)
}

// GetSeasons lists the distinct seasons that have events, ascending
func (s *eventServiceImpl) GetSeasons(ctx context.Context) ([]string, error) {
	events, err := s.eventRepo.GetAllEvents(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	seasons := make([]string, 0)
	for _, e := range events {
		if e.Season == "" || seen[e.Season] {
			continue
		}
		seen[e.Season] = true
		seasons = append(seasons, e.Season)
	}
	sort.Strings(seasons)
	return seasons, nil
}

// CreateEvent creates a new event
func (s *eventServiceImpl) CreateEvent(ctx context.Context, session auth.Session, req *dto.EventRequest) (*models.Event, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	event, err := eventFromRequest(req)
	if err != nil {
		return nil, err
	}
	event.ID = uuid.NewString()

	if err := s.eventRepo.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}
	return event, nil
}

// UpdateEvent replaces an existing event's fields
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, session auth.Session, id string, req *dto.EventRequest) (*models.Event, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	if _, err := s.eventRepo.GetEventByID(ctx, id); err != nil {
		return nil, err
	}

	event, err := eventFromRequest(req)
	if err != nil {
		return nil, err
	}
	event.ID = id

	if err := s.eventRepo.UpdateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("updating event: %w", err)
	}
	return event, nil
}
