package domain

import "encoding/json"

// Guest represents one attendee of one event. CustomData is a
// JSON-encoded document holding hotel/room assignment and check-in
// bookkeeping plus arbitrary extension fields the console does not
// interpret.
type Guest struct {
	ID          int64  `json:"ID"`
	ProjectID   int64  `json:"projectID,omitempty"`
	EventID     int64  `json:"eventID"`
	GuestName   string `json:"guestName"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	CustomData  string `json:"customData,omitempty"`
	CreatedAt   string `json:"CreatedAt,omitempty"`
	UpdatedAt   string `json:"UpdatedAt,omitempty"`
}

// UnmarshalJSON accepts the legacy wire naming alongside the canonical
// one: guestID for the identifier and Options for the custom-data
// document. Decoding normalizes to ID and CustomData.
func (g *Guest) UnmarshalJSON(data []byte) error {
	type alias Guest
	aux := struct {
		*alias
		LegacyID      *int64  `json:"guestID"`
		LegacyOptions *string `json:"options"`
	}{alias: (*alias)(g)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if g.ID == 0 && aux.LegacyID != nil {
		g.ID = *aux.LegacyID
	}
	if g.CustomData == "" && aux.LegacyOptions != nil {
		g.CustomData = *aux.LegacyOptions
	}
	return nil
}

// ParsedCustomData decodes the embedded custom-data document.
func (g *Guest) ParsedCustomData() OptionsMap {
	return ParseOptions(g.CustomData)
}

// Hotel returns the assigned hotel name, if any.
func (g *Guest) Hotel() string {
	return g.ParsedCustomData().GetString(KeyHotel)
}

// Room returns the assigned room name, if any.
func (g *Guest) Room() string {
	return g.ParsedCustomData().GetString(KeyRoom)
}

// Status derives the guest's check-in status from the custom-data
// document.
func (g *Guest) Status() CheckInStatus {
	return StatusOf(g.ParsedCustomData())
}
