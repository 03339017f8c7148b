package domain

import "encoding/json"

// Well-known keys inside the embedded options/custom-data document.
// Anything else found in the document is opaque extension data and must
// survive a parse -> mutate -> encode round trip untouched.
const (
	KeyHotels       = "Hotels"
	KeyRooms        = "Rooms"
	KeyHotel        = "Hotel"
	KeyRoom         = "Room"
	KeyCheckInDate  = "CheckInDate"
	KeyCheckOutDate = "CheckOutDate"
	KeyCheckedInAt  = "CheckedInAt"
	KeyCheckedOutAt = "CheckedOutAt"
)

// OptionsMap is the decoded form of the free-form JSON sub-document
// carried by events (Options) and guests (CustomData).
type OptionsMap map[string]interface{}

// ParseOptions decodes the embedded JSON document. Empty, missing or
// malformed input decodes to an empty map; this function never fails.
// The leniency is deliberate and limited to this document: a malformed
// response body elsewhere is a decode error, not an empty value.
func ParseOptions(raw string) OptionsMap {
	if raw == "" {
		return OptionsMap{}
	}

	m := OptionsMap{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return OptionsMap{}
	}
	if m == nil {
		return OptionsMap{}
	}
	return m
}

// Encode is the inverse of ParseOptions for maps holding JSON-safe
// values (strings, numbers, booleans, nested maps/slices, nil).
func (m OptionsMap) Encode() (string, error) {
	if m == nil {
		m = OptionsMap{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetString returns the value under key when it is a non-empty string.
func (m OptionsMap) GetString(key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// GetStringSlice returns the value under key as a string slice. JSON
// arrays decode as []interface{}; non-string elements are skipped.
func (m OptionsMap) GetStringSlice(key string) []string {
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil
	}

	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// SetString stores a string value, removing the key entirely when the
// value is empty so cleared fields do not linger in the document.
func (m OptionsMap) SetString(key, value string) {
	if value == "" {
		delete(m, key)
		return
	}
	m[key] = value
}

// SetStringSlice stores a list value under key.
func (m OptionsMap) SetStringSlice(key string, values []string) {
	if len(values) == 0 {
		delete(m, key)
		return
	}
	m[key] = values
}
