package discountcodes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Date accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date (UTC).
type Date struct {
	t   time.Time
	set bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	if s == "" {
		*d = Date{}
		return nil
	}

	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = Date{t: t, set: true}
			return nil
		}
	}

	return fmt.Errorf("invalid date %q", s)
}

// Time returns the parsed time, nil when the value was absent.
func (d *Date) Time() *time.Time {
	if d == nil || !d.set {
		return nil
	}

	t := d.t

	return &t
}
