package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Flag is a boolean that the backend serializes inconsistently: some
// endpoints emit true/false, others emit 0/1 integers.
type Flag bool

// UnmarshalJSON accepts bool, integer, or numeric-string encodings.
func (f *Flag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		i, err := n.Int64()
		if err != nil {
			return fmt.Errorf("invalid flag value %q: %w", n.String(), err)
		}
		*f = i != 0
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid flag value %q: %w", s, err)
		}
		*f = i != 0
		return nil
	}

	return fmt.Errorf("invalid flag value: %s", string(data))
}

// MarshalJSON emits the 0/1 form the backend expects on writes.
func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// Bool returns the flag as a plain bool.
func (f Flag) Bool() bool { return bool(f) }

// Text is a string field that the backend sometimes serves as a JSON
// number (amounts entered through forms round-trip as either type).
type Text string

// UnmarshalJSON accepts string or numeric encodings.
func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*t = Text(n.String())
		return nil
	}

	return fmt.Errorf("invalid text value: %s", string(data))
}

// String returns the underlying string.
func (t Text) String() string { return string(t) }
