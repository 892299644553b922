package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yigit/refbase/internal/app/models"
	"github.com/yigit/refbase/internal/app/models/dto"
	"github.com/yigit/refbase/internal/app/repositories"
	"github.com/yigit/refbase/internal/pkg/apperrors"
)

// AvailabilityService defines the interface for availability form operations
type AvailabilityService interface {
	GetForm(ctx context.Context, officialID, season string) (*dto.AvailabilityFormResponse, error)
	Submit(ctx context.Context, req *dto.SubmitAvailabilityRequest) ([]models.Availability, error)
}

// availabilityServiceImpl implements the AvailabilityService interface
type availabilityServiceImpl struct {
	officialRepo *repositories.OfficialRepository
	eventRepo    *repositories.EventRepository
	availRepo    *repositories.AvailabilityRepository
}

// NewAvailabilityService creates a new availability service instance
func NewAvailabilityService(
	officialRepo *repositories.OfficialRepository,
	eventRepo *repositories.EventRepository,
	availRepo *repositories.AvailabilityRepository,
) AvailabilityService {
	return &availabilityServiceImpl{
		officialRepo: officialRepo,
		eventRepo:    eventRepo,
		availRepo:    availRepo,
	}
}

// formEvents lists the events an official is asked about for a season,
// in form order. Events flagged as not needing availability stay off
// the form.
func (s *availabilityServiceImpl) formEvents(ctx context.Context, season string) ([]models.Event, error) {
	events, err := s.eventRepo.GetAllEvents(ctx)
	if err != nil {
		return nil, err
	}
	form := make([]models.Event, 0, len(events))
	for _, e := range events {
		if e.Season == season && e.RequiresAvailability {
			form = append(form, e)
		}
	}
	sort.SliceStable(form, func(i, j int) bool {
		if !form[i].StartDate.Equal(form[j].StartDate.Time) {
			return form[i].StartDate.Before(form[j].StartDate)
		}
		return form[i].Name < form[j].Name
	})
	return form, nil
}

// GetForm builds the availability form for one official and season,
// pre-filled with any answers already on file.
func (s *availabilityServiceImpl) GetForm(ctx context.Context, officialID, season string) (*dto.AvailabilityFormResponse, error) {
	official, err := s.officialRepo.GetOfficialByID(ctx, officialID)
	if err != nil {
		return nil, err
	}

	events, err := s.formEvents(ctx, season)
	if err != nil {
		return nil, err
	}

	answers, err := s.availRepo.GetAvailabilityForOfficial(ctx, officialID, season)
	if err != nil {
		return nil, err
	}
	byEvent := make(map[string]models.Availability, len(answers))
	for _, a := range answers {
		byEvent[a.EventID] = a
	}

	form := &dto.AvailabilityFormResponse{
		OfficialID:   official.ID,
		OfficialName: official.DisplayName(),
		Season:       season,
		Events:       make([]dto.FormEventResponse, 0, len(events)),
	}
	for _, e := range events {
		row := dto.FormEventResponse{
			EventID:   e.ID,
			Name:      e.Name,
			Location:  e.Location,
			StartDate: e.StartDate,
			EndDate:   e.EndDate,
		}
		if a, ok := byEvent[e.ID]; ok {
			available := a.Available
			row.Available = &available
			row.AirfareEstimate = a.AirfareEstimate
		}
		form.Events = append(form.Events, row)
	}
	return form, nil
}

// Submit replaces an official's answers for one season. Every prior
// row for the same official and season is cleared before the new
// entries land, so form events missing from the submission lose any
// previous answer. Other seasons are left alone.
func (s *availabilityServiceImpl) Submit(ctx context.Context, req *dto.SubmitAvailabilityRequest) ([]models.Availability, error) {
	official, err := s.officialRepo.GetOfficialByID(ctx, req.OfficialID)
	if err != nil {
		return nil, err
	}

	events, err := s.formEvents(ctx, req.Season)
	if err != nil {
		return nil, err
	}
	inForm := make(map[string]bool, len(events))
	for _, e := range events {
		inForm[e.ID] = true
	}

	// Last answer wins when a submission repeats an event.
	byEvent := make(map[string]dto.AvailabilityEntry, len(req.Entries))
	order := make([]string, 0, len(req.Entries))
	for _, entry := range req.Entries {
		if !inForm[entry.EventID] {
			return nil, fmt.Errorf("%w: event %s is not on the %s form", apperrors.ErrValidationFailed, entry.EventID, req.Season)
		}
		if _, seen := byEvent[entry.EventID]; !seen {
			order = append(order, entry.EventID)
		}
		byEvent[entry.EventID] = entry
	}

	now := time.Now().UTC()
	entries := make([]models.Availability, 0, len(byEvent))
	for _, eventID := range order {
		entry := byEvent[eventID]
		entries = append(entries, models.Availability{
			ID:              uuid.NewString(),
			OfficialID:      official.ID,
			Season:          req.Season,
			EventID:         entry.EventID,
			Available:       entry.Available,
			AirfareEstimate: entry.AirfareEstimate,
			Timestamp:       now,
		})
	}

	if err := s.availRepo.ReplaceForSeason(ctx, official.ID, req.Season, entries); err != nil {
		return nil, fmt.Errorf("recording availability: %w", err)
	}
	return entries, nil
}
