package validation

import (
	"bytes"
	"encoding/json"
)

// Text is a string field that also accepts non-string JSON values. Numbers
// and booleans keep their literal text, objects and arrays their raw JSON,
// and null reads as empty.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		*t = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	default:
		*t = Text(b)
	}
	return nil
}

// String returns t as a plain string.
func (t Text) String() string { return string(t) }
