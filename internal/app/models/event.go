package models

// Event is a tournament or course an official can be nominated for.
type Event struct {
	ID                   string
	Season               string
	StartDate            Date
	EndDate              Date
	Name                 string
	Location             string
	DestAirport          string
	ArrivalDate          Date
	DepartureDate        Date
	RequiresAvailability bool
}
