package dto

import "github.com/yigit/refbase/internal/app/models"

// AssignmentResponse represents one nomination
type AssignmentResponse struct {
	ID           string `json:"id"`
	OfficialID   string `json:"officialId"`
	OfficialName string `json:"officialName,omitempty"`
	EventID      string `json:"eventId"`
	EventName    string `json:"eventName,omitempty"`
	Position     string `json:"position"`
}

// FromAssignment converts a models.Assignment to an AssignmentResponse
func FromAssignment(a *models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:         a.ID,
		OfficialID: a.OfficialID,
		EventID:    a.EventID,
		Position:   a.Position,
	}
}

// AssignmentRequest nominates an official for an event
type AssignmentRequest struct {
	OfficialID string `json:"officialId" binding:"required"`
	EventID    string `json:"eventId" binding:"required"`
	Position   string `json:"position"`
}

// CreateAssignmentResponse carries the stored nomination plus a warning
// when the pair was already nominated. Duplicates are allowed.
type CreateAssignmentResponse struct {
	Assignment AssignmentResponse `json:"assignment"`
	Warning    string             `json:"warning,omitempty"`
}

// AssignmentFilterRequest represents list filter parameters
type AssignmentFilterRequest struct {
	EventID    string `form:"eventId"`
	OfficialID string `form:"officialId"`
}
