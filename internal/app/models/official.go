package models

import "strings"

// Official is a member of the referee roster. Birthdate and course year
// stay free text because historical files carry values like "1998 (appr.)"
// that must round-trip untouched.
type Official struct {
	ID            string
	FirstName     string
	LastName      string
	Gender        string
	Nationality   string
	Zone          string
	Birthdate     string
	FIVBID        string
	Email         string
	Phone         string
	OriginAirport string
	PositionType  string
	CCRole        string
	RefLevel      string
	CourseYear    string
	PhotoFile     string
	PassportFile  string
	ShirtSize     string
	ShortsSize    string
	Active        bool
	Type          string
}

// DisplayName joins first and last name, trimming the surrounding space
// when either part is missing.
func (o *Official) DisplayName() string {
	return strings.TrimSpace(o.FirstName + " " + o.LastName)
}
