package domain

import "encoding/json"

// Role is a staff account role.
type Role string

const (
	RoleSystemAdmin Role = "SYSTEM_ADMIN"
	RoleProjectUser Role = "PROJECT_USER"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleSystemAdmin || r == RoleProjectUser
}

// User represents a staff account. Users are not scoped to a single
// event and are managed independently of events and guests.
type User struct {
	ID          int64  `json:"ID"`
	Username    string `json:"username"`
	Role        Role   `json:"role"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	CreatedAt   string `json:"CreatedAt,omitempty"`
	UpdatedAt   string `json:"UpdatedAt,omitempty"`
}

// UnmarshalJSON accepts the legacy userID naming for the identifier.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := struct {
		*alias
		LegacyID *int64 `json:"userID"`
	}{alias: (*alias)(u)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if u.ID == 0 && aux.LegacyID != nil {
		u.ID = *aux.LegacyID
	}
	return nil
}
