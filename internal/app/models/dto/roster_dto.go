package dto

import (
	"time"

	"github.com/yigit/refbase/internal/app/models"
)

// RosterRowResponse is one line of the merged roster report: an official
// paired with an event through a nomination or an availability answer.
type RosterRowResponse struct {
	Season          string        `json:"season"`
	EventID         string        `json:"eventId"`
	EventName       string        `json:"eventName"`
	StartDate       models.Date   `json:"startDate"`
	EndDate         models.Date   `json:"endDate"`
	Location        string        `json:"location"`
	OfficialID      string        `json:"officialId"`
	OfficialName    string        `json:"officialName"`
	Position        string        `json:"position,omitempty"`
	Status          models.Status `json:"status"`
	AirfareEstimate string        `json:"airfareEstimate,omitempty"`
	Timestamp       *time.Time    `json:"timestamp,omitempty"`
}

// RosterResponse represents the merged report
type RosterResponse struct {
	Rows []RosterRowResponse `json:"rows"`
}

// RosterFilterRequest represents report filter parameters
type RosterFilterRequest struct {
	Season  string `form:"season"`
	EventID string `form:"eventId"`
	Status  string `form:"status"`
}
