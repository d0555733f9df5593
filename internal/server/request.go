package server

import (
	"bytes"
	"encoding/json"
	"strings"
)

// numberOrString accepts a JSON number or string and keeps its text. JSON null and absent
// fields stay nil so the domain layer can report them as missing.
type numberOrString struct {
	value *string
}

func (n *numberOrString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		n.value = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n.value = &s
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	s := num.String()
	n.value = &s
	return nil
}

func (n numberOrString) Ptr() *string {
	return n.value
}

// String returns the trimmed text or "" when absent.
func (n numberOrString) String() string {
	if n.value == nil {
		return ""
	}
	return strings.TrimSpace(*n.value)
}
