package domain

import "encoding/json"

// Event represents a single organized occasion owned by a project.
// Options is a JSON-encoded document holding at minimum the hotel and
// room lists configured for the event (see OptionsMap).
type Event struct {
	ID          int64  `json:"ID"`
	ProjectID   int64  `json:"projectID,omitempty"`
	EventName   string `json:"eventName"`
	Description string `json:"description,omitempty"`
	Options     string `json:"options,omitempty"`
	CreatedAt   string `json:"CreatedAt,omitempty"`
	UpdatedAt   string `json:"UpdatedAt,omitempty"`
}

// UnmarshalJSON accepts both the canonical and the legacy wire naming
// for the identifier (ID vs eventID). Older backend versions emitted
// the latter; everything downstream of this decode sees only ID.
func (e *Event) UnmarshalJSON(data []byte) error {
	type alias Event
	aux := struct {
		*alias
		LegacyID *int64 `json:"eventID"`
	}{alias: (*alias)(e)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if e.ID == 0 && aux.LegacyID != nil {
		e.ID = *aux.LegacyID
	}
	return nil
}

// ParsedOptions decodes the embedded options document.
func (e *Event) ParsedOptions() OptionsMap {
	return ParseOptions(e.Options)
}

// Hotels lists the hotel names configured for the event.
func (e *Event) Hotels() []string {
	return e.ParsedOptions().GetStringSlice(KeyHotels)
}

// Rooms lists the room names configured for the event.
func (e *Event) Rooms() []string {
	return e.ParsedOptions().GetStringSlice(KeyRooms)
}
