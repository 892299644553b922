package dto

import "github.com/yigit/refbase/internal/app/models"

// EventResponse represents one calendar event
type EventResponse struct {
	ID                   string      `json:"id"`
	Season               string      `json:"season"`
	StartDate            models.Date `json:"startDate"`
	EndDate              models.Date `json:"endDate"`
	Name                 string      `json:"name"`
	Location             string      `json:"location"`
	DestAirport          string      `json:"destAirport"`
	ArrivalDate          models.Date `json:"arrivalDate"`
	DepartureDate        models.Date `json:"departureDate"`
	RequiresAvailability bool        `json:"requiresAvailability"`
}

// FromEvent converts a models.Event to an EventResponse
func FromEvent(e *models.Event) EventResponse {
	return EventResponse{
		ID:                   e.ID,
		Season:               e.Season,
		StartDate:            e.StartDate,
		EndDate:              e.EndDate,
		Name:                 e.Name,
		Location:             e.Location,
		DestAirport:          e.DestAirport,
		ArrivalDate:          e.ArrivalDate,
		DepartureDate:        e.DepartureDate,
		RequiresAvailability: e.RequiresAvailability,
	}
}

// EventRequest carries the editable fields of an event. Dates arrive as
// YYYY-MM-DD strings and are validated in the service layer.
type EventRequest struct {
	Season               string `json:"season" binding:"required"`
	Name                 string `json:"name" binding:"required"`
	StartDate            string `json:"startDate"`
	EndDate              string `json:"endDate"`
	Location             string `json:"location"`
	DestAirport          string `json:"destAirport"`
	ArrivalDate          string `json:"arrivalDate"`
	DepartureDate        string `json:"departureDate"`
	RequiresAvailability *bool  `json:"requiresAvailability"`
}

// EventFilterRequest represents list filter parameters
type EventFilterRequest struct {
	Season string `form:"season"`
}

// EventListResponse represents the full event list grouped for display
type EventListResponse struct {
	Events []EventResponse `json:"events"`
}
