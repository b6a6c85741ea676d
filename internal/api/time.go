// ABOUTME: Timestamp type tolerant of the backend's naive datetime serialization
// ABOUTME: Accepts RFC 3339 and zone-less ISO 8601 strings

package api

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp wraps time.Time to accept the backend's timestamp formats. The
// backend serializes naive UTC datetimes, so values may arrive with or
// without a zone offset and with or without fractional seconds.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// UnmarshalJSON parses the first matching layout. Zone-less values are taken
// as UTC.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		// Zone-less layouts parse as UTC, matching the backend's convention.
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

// MarshalJSON emits RFC 3339, which the backend accepts.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}
