package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yigit/refbase/internal/app/models"
	"github.com/yigit/refbase/internal/app/models/dto"
	"github.com/yigit/refbase/internal/app/repositories"
	"github.com/yigit/refbase/internal/pkg/auth"
)

// AssignmentService defines the interface for nomination operations
type AssignmentService interface {
	GetAssignments(ctx context.Context, session auth.Session, filter *dto.AssignmentFilterRequest) ([]dto.AssignmentResponse, error)
	CreateAssignment(ctx context.Context, session auth.Session, req *dto.AssignmentRequest) (*dto.CreateAssignmentResponse, error)
	DeleteAssignment(ctx context.Context, session auth.Session, id string) error
}

// assignmentServiceImpl implements the AssignmentService interface
type assignmentServiceImpl struct {
	assignmentRepo *repositories.AssignmentRepository
	officialRepo   *repositories.OfficialRepository
	eventRepo      *repositories.EventRepository
}

// NewAssignmentService creates a new assignment service instance
func NewAssignmentService(
	assignmentRepo *repositories.AssignmentRepository,
	officialRepo *repositories.OfficialRepository,
	eventRepo *repositories.EventRepository,
) AssignmentService {
	return &assignmentServiceImpl{
		assignmentRepo: assignmentRepo,
		officialRepo:   officialRepo,
		eventRepo:      eventRepo,
	}
}

// GetAssignments lists nominations with official and event names joined
// in. Nominations pointing at deleted records keep blank names.
func (s *assignmentServiceImpl) GetAssignments(ctx context.Context, session auth.Session, filter *dto.AssignmentFilterRequest) ([]dto.AssignmentResponse, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.GetAllAssignments(ctx)
	if err != nil {
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

	officialNames := make(map[string]string, len(officials))
	for i := range officials {
		officialNames[officials[i].ID] = officials[i].DisplayName()
	}
	eventNames := make(map[string]string, len(events))
	for i := range events {
		eventNames[events[i].ID] = events[i].Name
	}

	responses := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		a := &assignments[i]
		if filter.EventID != "" && a.EventID != filter.EventID {
			continue
		}
		if filter.OfficialID != "" && a.OfficialID != filter.OfficialID {
			continue
		}
		resp := dto.FromAssignment(a)
		resp.OfficialName = officialNames[a.OfficialID]
		resp.EventName = eventNames[a.EventID]
		responses = append(responses, resp)
	}
	return responses, nil
}

// CreateAssignment nominates an official for an event. Repeating an
// exact nomination (same official, event and position) is allowed but
// flagged with a warning; the same official in another position is a
// regular create.
func (s *assignmentServiceImpl) CreateAssignment(ctx context.Context, session auth.Session, req *dto.AssignmentRequest) (*dto.CreateAssignmentResponse, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	official, err := s.officialRepo.GetOfficialByID(ctx, req.OfficialID)
	if err != nil {
		return nil, err
	}
	event, err := s.eventRepo.GetEventByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	position := strings.TrimSpace(req.Position)
	duplicate, err := s.assignmentRepo.HasAssignment(ctx, official.ID, event.ID, position)
	if err != nil {
		return nil, err
	}

	assignment := &models.Assignment{
		ID:         uuid.NewString(),
		OfficialID: official.ID,
		EventID:    event.ID,
		Position:   position,
	}
	if err := s.assignmentRepo.CreateAssignment(ctx, assignment); err != nil {
		return nil, fmt.Errorf("creating assignment: %w", err)
	}

	resp := &dto.CreateAssignmentResponse{Assignment: dto.FromAssignment(assignment)}
	resp.Assignment.OfficialName = official.DisplayName()
	resp.Assignment.EventName = event.Name
	if duplicate {
		resp.Warning = fmt.Sprintf("%s is already nominated for %s", official.DisplayName(), event.Name)
	}
	return resp, nil
}

// DeleteAssignment removes a nomination
func (s *assignmentServiceImpl) DeleteAssignment(ctx context.Context, session auth.Session, id string) error {
	if err := requireAdmin(session); err != nil {
		return err
	}
	return s.assignmentRepo.DeleteAssignment(ctx, id)
}
