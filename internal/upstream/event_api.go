package upstream

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Rawuh-in/console/internal/domain"
)

// EventPayload is the body for event create and update calls. Update
// is a full overwrite on the backend, not a merge: callers must supply
// every mutable field, including the complete options document.
type EventPayload struct {
	EventName   string `json:"eventName"`
	Description string `json:"description,omitempty"`
	Options     string `json:"options,omitempty"`
}

// EventList is a decoded list response. Pagination is nil when the
// backend omits it.
type EventList struct {
	Items      []domain.Event
	Pagination *domain.Pagination
}

// EventAPI exposes the event resource operations.
type EventAPI struct {
	client *Client
}

// NewEventAPI creates the event resource client.
func NewEventAPI(client *Client) *EventAPI {
	return &EventAPI{client: client}
}

// List fetches a page of events.
func (a *EventAPI) List(ctx context.Context, params ListParams) (*EventList, error) {
	var env envelope
	if err := a.client.do(ctx, http.MethodGet, a.client.projectPath("events"), params.Values(), nil, &env); err != nil {
		return nil, err
	}

	out := &EventList{Pagination: env.Pagination}
	if err := env.decodeData(&out.Items); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one event by id.
func (a *EventAPI) Get(ctx context.Context, id int64) (*domain.Event, error) {
	var env envelope
	if err := a.client.do(ctx, http.MethodGet, a.client.projectPath("events", formatID(id)), nil, nil, &env); err != nil {
		return nil, err
	}

	var event domain.Event
	if err := env.decodeData(&event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Create creates an event and returns the stored record.
func (a *EventAPI) Create(ctx context.Context, payload EventPayload) (*domain.Event, error) {
	var env envelope
	if err := a.client.do(ctx, http.MethodPost, a.client.projectPath("events"), nil, payload, &env); err != nil {
		return nil, err
	}

	var event domain.Event
	if err := env.decodeData(&event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Update overwrites an event with the full payload.
func (a *EventAPI) Update(ctx context.Context, id int64, payload EventPayload) error {
	var env envelope
	return a.client.do(ctx, http.MethodPut, a.client.projectPath("events", formatID(id)), nil, payload, &env)
}

// Delete removes an event. Deleting an already-removed id surfaces the
// backend's not-found error unchanged.
func (a *EventAPI) Delete(ctx context.Context, id int64) error {
	var env envelope
	return a.client.do(ctx, http.MethodDelete, a.client.projectPath("events", formatID(id)), nil, nil, &env)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
