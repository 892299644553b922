package models

import "time"

// Status describes where an official stands for a given event, derived
// from assignment and availability records.
type Status string

const (
	StatusNominated    Status = "Nominated"
	StatusAvailable    Status = "Available"
	StatusNotAvailable Status = "Not available"
	StatusUnknown      Status = "Unknown"
)

// Enumerations for official and event attributes. The empty string means
// "unset" and is a legal stored value for every list that contains it.
var (
	Genders       = []string{"", "Male", "Female"}
	Zones         = []string{"", "E", "W", "SEA", "O", "C"}
	PositionTypes = []string{"Control Committee", "Referee"}
	CCRoles       = []string{"", "Technical Delegate", "Referee Coach", "Both"}
	RefLevels     = []string{"", "FIVB", "AVC International", "AVC Candidate", "National"}
	RefTypes      = []string{"", "Indoor", "Beach", "Both"}
	UniformSizes  = []string{"", "XS", "S", "M", "L", "XL", "2XL", "3XL"}
)

// InList reports whether v is one of the allowed values.
func InList(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// Boolean cells are stored as the literals "True" and "False".
const (
	BoolTrue  = "True"
	BoolFalse = "False"
)

// ParseBool decodes a stored boolean cell. Anything other than the two
// canonical literals falls back to def, so files written by older
// revisions keep working.
func ParseBool(v string, def bool) bool {
	switch v {
	case BoolTrue:
		return true
	case BoolFalse:
		return false
	default:
		return def
	}
}

// FormatBool encodes a boolean for storage.
func FormatBool(b bool) string {
	if b {
		return BoolTrue
	}
	return BoolFalse
}

const dateLayout = "2006-01-02"

// Date is a calendar day with no time component. The zero value stands
// for an empty cell and marshals to "".
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day.
func NewDate(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// String renders the date as YYYY-MM-DD, or "" for the zero value.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. Empty and null become the
// zero value; anything unparsable does too, mirroring how stored cells
// are read.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*d = Date{}
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		*d = Date{}
		return nil
	}
	*d = NewDate(t)
	return nil
}

// Before reports whether d sorts ahead of other. The zero value sorts
// first, matching how empty cells order against real dates as text.
func (d Date) Before(other Date) bool {
	if d.IsZero() {
		return !other.IsZero()
	}
	if other.IsZero() {
		return false
	}
	return d.Time.Before(other.Time)
}
