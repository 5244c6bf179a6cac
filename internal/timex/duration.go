// Package timex adds JSON support for time.Duration.
package timex

import (
	"encoding/json"
	"errors"
	"time"
)

// Duration accepts either a Go duration string ("3s", "1m30s") or an integer
// number of nanoseconds when decoded from JSON.
type Duration struct {
	time.Duration
}

// MarshalJSON encodes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a string or a number.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return errors.New("invalid duration")
	}
}
