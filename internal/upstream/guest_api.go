package upstream

import (
	"context"
	"net/http"

	"github.com/Rawuh-in/console/internal/domain"
)

// GuestPayload is the body for guest create and update calls. Update
// overwrites the full record on the backend; callers wanting to touch
// one custom-data field must send the whole mutated document.
type GuestPayload struct {
	GuestName   string `json:"guestName"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	CustomData  string `json:"customData,omitempty"`
	EventID     int64  `json:"eventID,omitempty"`
}

// GuestList is a decoded list response scoped to one event.
type GuestList struct {
	Items      []domain.Guest
	Pagination *domain.Pagination
}

// GuestAPI exposes the guest resource operations, all scoped to an
// owning event except the dedicated check-in transition.
type GuestAPI struct {
	client *Client
}

// NewGuestAPI creates the guest resource client.
func NewGuestAPI(client *Client) *GuestAPI {
	return &GuestAPI{client: client}
}

// List fetches a page of guests for an event.
func (a *GuestAPI) List(ctx context.Context, eventID int64, params ListParams) (*GuestList, error) {
	var env envelope
	path := a.client.projectPath("events", formatID(eventID), "guests")
	if err := a.client.do(ctx, http.MethodGet, path, params.Values(), nil, &env); err != nil {
		return nil, err
	}

	out := &GuestList{Pagination: env.Pagination}
	if err := env.decodeData(&out.Items); err != nil {
		return nil, err
	}
	return out, nil
}

// Create adds a guest to an event and returns the stored record.
func (a *GuestAPI) Create(ctx context.Context, eventID int64, payload GuestPayload) (*domain.Guest, error) {
	var env envelope
	path := a.client.projectPath("events", formatID(eventID), "guests")
	if err := a.client.do(ctx, http.MethodPost, path, nil, payload, &env); err != nil {
		return nil, err
	}

	var guest domain.Guest
	if err := env.decodeData(&guest); err != nil {
		return nil, err
	}
	return &guest, nil
}

// Update overwrites a guest with the full payload.
func (a *GuestAPI) Update(ctx context.Context, eventID, guestID int64, payload GuestPayload) error {
	var env envelope
	path := a.client.projectPath("events", formatID(eventID), "guests", formatID(guestID))
	return a.client.do(ctx, http.MethodPut, path, nil, payload, &env)
}

// Delete removes a guest from an event.
func (a *GuestAPI) Delete(ctx context.Context, eventID, guestID int64) error {
	var env envelope
	path := a.client.projectPath("events", formatID(eventID), "guests", formatID(guestID))
	return a.client.do(ctx, http.MethodDelete, path, nil, nil, &env)
}

// CheckIn records a check-in server-side. This is a dedicated state
// transition, not an update: the backend stamps the guest itself and
// this layer only forwards the id.
func (a *GuestAPI) CheckIn(ctx context.Context, guestID int64) error {
	var env envelope
	path := a.client.projectPath("guests", "checkin", formatID(guestID))
	return a.client.do(ctx, http.MethodPost, path, nil, nil, &env)
}
