package dto

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FormValue is a single submitted form field. Dashboard forms post every
// value as text; JSON clients may send numbers or booleans instead, which are
// kept as their literal text so parsing happens in one place.
type FormValue string

// UnmarshalJSON accepts strings, numbers, booleans, null and raw arrays/objects
func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	*v = FormValue(data)
	return nil
}

// String returns the trimmed text of the value
func (v FormValue) String() string {
	return strings.TrimSpace(string(v))
}

// Empty reports whether the field is missing or blank
func (v FormValue) Empty() bool {
	return v.String() == ""
}

// Ptr returns nil for a blank value, the trimmed text otherwise.
// Optional text columns are stored as NULL when the field is blank.
func (v FormValue) Ptr() *string {
	if v.Empty() {
		return nil
	}
	s := v.String()
	return &s
}
