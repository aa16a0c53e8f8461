package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexID is a numeric id the clients send either as a JSON number or as a
// numeric string.
type FlexID uint64

// UnmarshalJSON implements json.Unmarshaler.
func (id *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		if s == "" {
			*id = 0
			return nil
		}

		data = []byte(s)
	}

	v, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", data, err)
	}

	*id = FlexID(v)

	return nil
}

// ParseID parses a numeric id from a query or path parameter.
func ParseID(s string) (uint64, bool) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}

	return v, true
}
