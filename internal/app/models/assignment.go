package models

// Assignment nominates an official for an event in a given role.
type Assignment struct {
	ID         string
	OfficialID string
	EventID    string
	Position   string
}
