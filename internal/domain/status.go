package domain

// CheckInStatus is derived from a guest's custom-data document, never
// stored. Every console surface derives it through StatusOf so all
// pages agree on the same guest's status.
type CheckInStatus string

const (
	StatusNotAssigned CheckInStatus = "not_assigned"
	StatusAssigned    CheckInStatus = "assigned"
	StatusCheckedIn   CheckInStatus = "checked_in"
	StatusCheckedOut  CheckInStatus = "checked_out"
)

// StatusOf derives the check-in status from a custom-data document:
// a CheckedOutAt timestamp wins, then CheckedInAt, then the presence
// of a hotel or room assignment. A guest with none of these has not
// been assigned yet.
func StatusOf(data OptionsMap) CheckInStatus {
	switch {
	case data.GetString(KeyCheckedOutAt) != "":
		return StatusCheckedOut
	case data.GetString(KeyCheckedInAt) != "":
		return StatusCheckedIn
	case data.GetString(KeyHotel) != "" || data.GetString(KeyRoom) != "":
		return StatusAssigned
	default:
		return StatusNotAssigned
	}
}
