package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/yigit/refbase/internal/app/models"
	"github.com/yigit/refbase/internal/app/models/dto"
	"github.com/yigit/refbase/internal/app/repositories"
	"github.com/yigit/refbase/internal/export"
	"github.com/yigit/refbase/internal/pkg/auth"
)

// RosterService defines the interface for the merged roster report
type RosterService interface {
	BuildRoster(ctx context.Context, session auth.Session, filter *dto.RosterFilterRequest) (*dto.RosterResponse, error)
	ExportRoster(ctx context.Context, session auth.Session, filter *dto.RosterFilterRequest) ([]byte, string, error)
}

// rosterServiceImpl implements the RosterService interface
type rosterServiceImpl struct {
	officialRepo   *repositories.OfficialRepository
	eventRepo      *repositories.EventRepository
	availRepo      *repositories.AvailabilityRepository
	assignmentRepo *repositories.AssignmentRepository
}

// NewRosterService creates a new roster service instance
func NewRosterService(
	officialRepo *repositories.OfficialRepository,
	eventRepo *repositories.EventRepository,
	availRepo *repositories.AvailabilityRepository,
	assignmentRepo *repositories.AssignmentRepository,
) RosterService {
	return &rosterServiceImpl{
		officialRepo:   officialRepo,
		eventRepo:      eventRepo,
		availRepo:      availRepo,
		assignmentRepo: assignmentRepo,
	}
}

type rosterPair struct {
	officialID string
	eventID    string
}

// joinPositions adds a label to a comma-joined list, skipping blanks
// and labels already present.
func joinPositions(existing, label string) string {
	if label == "" {
		return existing
	}
	if existing == "" {
		return label
	}
	for _, have := range strings.Split(existing, ", ") {
		if have == label {
			return existing
		}
	}
	return existing + ", " + label
}

// BuildRoster merges nominations and availability answers into one report.
// Every (official, event) pair that appears in either table gets a row;
// a nomination outranks any availability answer for the status column.
// Rows keep blank names when they reference records that no longer exist.
func (s *rosterServiceImpl) BuildRoster(ctx context.Context, session auth.Session, filter *dto.RosterFilterRequest) (*dto.RosterResponse, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	officials, err := s.officialRepo.GetAllOfficials(ctx)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.GetAllEvents(ctx)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignmentRepo.GetAllAssignments(ctx)
	if err != nil {
		return nil, err
	}
	answers, err := s.availRepo.GetAllAvailability(ctx)
	if err != nil {
		return nil, err
	}

	officialsByID := make(map[string]*models.Official, len(officials))
	for i := range officials {
		officialsByID[officials[i].ID] = &officials[i]
	}
	eventsByID := make(map[string]*models.Event, len(events))
	for i := range events {
		eventsByID[events[i].ID] = &events[i]
	}

	index := make(map[rosterPair]int)
	rows := make([]dto.RosterRowResponse, 0, len(assignments)+len(answers))

	newRow := func(pair rosterPair) int {
		row := dto.RosterRowResponse{
			EventID:    pair.eventID,
			OfficialID: pair.officialID,
			Status:     models.StatusUnknown,
		}
		if e := eventsByID[pair.eventID]; e != nil {
			row.Season = e.Season
			row.EventName = e.Name
			row.StartDate = e.StartDate
			row.EndDate = e.EndDate
			row.Location = e.Location
		}
		if o := officialsByID[pair.officialID]; o != nil {
			row.OfficialName = o.DisplayName()
		}
		rows = append(rows, row)
		index[pair] = len(rows) - 1
		return len(rows) - 1
	}

	for i := range assignments {
		a := &assignments[i]
		pair := rosterPair{a.OfficialID, a.EventID}
		idx, ok := index[pair]
		if !ok {
			idx = newRow(pair)
		}
		// A pair can hold several positions; exact repeats collapse.
		rows[idx].Status = models.StatusNominated
		rows[idx].Position = joinPositions(rows[idx].Position, a.Position)
	}

	for i := range answers {
		a := &answers[i]
		pair := rosterPair{a.OfficialID, a.EventID}
		idx, ok := index[pair]
		if !ok {
			idx = newRow(pair)
		}
		row := &rows[idx]
		// The answer's own season is the grouping key: it must keep the
		// row in the season it was submitted under even when the event's
		// season was edited afterwards.
		row.Season = a.Season
		row.AirfareEstimate = a.AirfareEstimate
		if !a.Timestamp.IsZero() {
			ts := a.Timestamp
			row.Timestamp = &ts
		}
		if row.Status != models.StatusNominated {
			if a.Available {
				row.Status = models.StatusAvailable
			} else {
				row.Status = models.StatusNotAvailable
			}
		}
	}

	filtered := make([]dto.RosterRowResponse, 0, len(rows))
	for _, row := range rows {
		if filter.Season != "" && row.Season != filter.Season {
			continue
		}
		if filter.EventID != "" && row.EventID != filter.EventID {
			continue
		}
		if filter.Status != "" && string(row.Status) != filter.Status {
			continue
		}
		filtered = append(filtered, row)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if !filtered[i].StartDate.Equal(filtered[j].StartDate.Time) {
			return filtered[i].StartDate.Before(filtered[j].StartDate)
		}
		if filtered[i].EventName != filtered[j].EventName {
			return filtered[i].EventName < filtered[j].EventName
		}
		return filtered[i].OfficialName < filtered[j].OfficialName
	})

	return &dto.RosterResponse{Rows: filtered}, nil
}

// ExportRoster renders the merged report as a spreadsheet
func (s *rosterServiceImpl) ExportRoster(ctx context.Context, session auth.Session, filter *dto.RosterFilterRequest) ([]byte, string, error) {
	roster, err := s.BuildRoster(ctx, session, filter)
	if err != nil {
		return nil, "", err
	}
	data, err := export.RosterWorkbook(roster.Rows)
	if err != nil {
		return nil, "", fmt.Errorf("building roster workbook: %w", err)
	}
	return data, "roster.xlsx", nil
}
