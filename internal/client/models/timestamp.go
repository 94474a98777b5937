// Package models defines the resources exchanged with the affiliate API.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// zonelessLayout is the ISO-8601 form the API emits for naive datetimes.
const zonelessLayout = "2006-01-02T15:04:05.999999999"

// Timestamp is a time.Time that also accepts timestamps without a zone
// offset, which are interpreted as UTC.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON accepts RFC 3339, zone-less ISO-8601 and null.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}

	if v, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = v
		return nil
	}
	v, err := time.ParseInLocation(zonelessLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	t.Time = v
	return nil
}

// MarshalJSON writes RFC 3339 with nanoseconds, or null for the zero value.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}
