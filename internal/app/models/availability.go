package models

import "time"

// Availability is one official's answer for one event in a season.
// AirfareEstimate is free text so entries like "~450 USD" survive.
type Availability struct {
	ID              string
	OfficialID      string
	Season          string
	EventID         string
	Available       bool
	AirfareEstimate string
	Timestamp       time.Time
}
