package helpers

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the wire format for calendar dates in the tabular files.
const DateLayout = "2006-01-02"

// dateLayouts are the input layouts accepted when normalizing date cells.
// Day-first numeric input is accepted only via the dotted European layout;
// slash-separated input stays month-ambiguous and is not accepted.
var dateLayouts = []string{
	DateLayout,
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02.01.2006",
}

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		// Use the global logger here, assuming logger might not be configured when this is called.
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseDate parses a date cell. Returns the zero time when the value is
// empty or unparsable; callers treat zero as "not set".
func ParseDate(value string) time.Time {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatDate renders a date for the tabular files; the zero time renders
// as the empty cell.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// NormalizeDate re-parses and re-formats a date cell, discarding anything
// unparsable to an empty value.
func NormalizeDate(value string) string {
	return FormatDate(ParseDate(value))
}

// timestampLayouts cover the formats older files carry, including
// fractional seconds without a zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses a stored timestamp cell. Returns the zero time
// when the value is empty or unparsable.
func ParseTimestamp(value string) time.Time {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatTimestamp renders a timestamp as RFC 3339 in UTC; the zero time
// renders as the empty cell.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
