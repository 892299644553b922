package dto

import (
	"time"

	"github.com/yigit/refbase/internal/app/models"
)

// AvailabilityResponse represents one stored availability answer
type AvailabilityResponse struct {
	ID              string    `json:"id"`
	OfficialID      string    `json:"officialId"`
	Season          string    `json:"season"`
	EventID         string    `json:"eventId"`
	Available       bool      `json:"available"`
	AirfareEstimate string    `json:"airfareEstimate"`
	Timestamp       time.Time `json:"timestamp"`
}

// FromAvailability converts a models.Availability to an AvailabilityResponse
func FromAvailability(a *models.Availability) AvailabilityResponse {
	return AvailabilityResponse{
		ID:              a.ID,
		OfficialID:      a.OfficialID,
		Season:          a.Season,
		EventID:         a.EventID,
		Available:       a.Available,
		AirfareEstimate: a.AirfareEstimate,
		Timestamp:       a.Timestamp,
	}
}

// AvailabilityFormRequest identifies whose form to build
type AvailabilityFormRequest struct {
	OfficialID string `form:"officialId" binding:"required"`
	Season     string `form:"season" binding:"required"`
}

// FormEventResponse is one row of the availability form: the event plus
// the official's current answer, if any. Available is nil when the
// official has not answered yet.
type FormEventResponse struct {
	EventID         string      `json:"eventId"`
	Name            string      `json:"name"`
	Location        string      `json:"location"`
	StartDate       models.Date `json:"startDate"`
	EndDate         models.Date `json:"endDate"`
	Available       *bool       `json:"available"`
	AirfareEstimate string      `json:"airfareEstimate"`
}

// AvailabilityFormResponse represents the form for one official and season
type AvailabilityFormResponse struct {
	OfficialID   string              `json:"officialId"`
	OfficialName string              `json:"officialName"`
	Season       string              `json:"season"`
	Events       []FormEventResponse `json:"events"`
}

// AvailabilityEntry is one answer inside a submission
type AvailabilityEntry struct {
	EventID         string `json:"eventId" binding:"required"`
	Available       bool   `json:"available"`
	AirfareEstimate string `json:"airfareEstimate"`
}

// SubmitAvailabilityRequest replaces an official's answers for a season
type SubmitAvailabilityRequest struct {
	OfficialID string              `json:"officialId" binding:"required"`
	Season     string              `json:"season" binding:"required"`
	Entries    []AvailabilityEntry `json:"entries"`
}
