package upstream

import (
	"context"
	"net/http"

	"github.com/Rawuh-in/console/internal/domain"
)

// UserPayload is the body for user create and update calls.
type UserPayload struct {
	Username    string      `json:"username"`
	Password    string      `json:"password,omitempty"`
	Role        domain.Role `json:"role"`
	DisplayName string      `json:"displayName,omitempty"`
	Email       string      `json:"email,omitempty"`
}

// UserList is a decoded list response.
type UserList struct {
	Items      []domain.User
	Pagination *domain.Pagination
}

// UserAPI exposes the staff-account resource operations. Users are not
// project-scoped.
type UserAPI struct {
	client *Client
}

// NewUserAPI creates the user resource client.
func NewUserAPI(client *Client) *UserAPI {
	return &UserAPI{client: client}
}

// List fetches a page of users.
func (a *UserAPI) List(ctx context.Context, params ListParams) (*UserList, error) {
	var env envelope
	if err := a.client.do(ctx, http.MethodGet, "users", params.Values(), nil, &env); err != nil {
		return nil, err
	}

	out := &UserList{Pagination: env.Pagination}
	if err := env.decodeData(&out.Items); err != nil {
		return nil, err
	}
	return out, nil
}

// Create creates a user and returns the stored record.
func (a *UserAPI) Create(ctx context.Context, payload UserPayload) (*domain.User, error) {
	var env envelope
	if err := a.client.do(ctx, http.MethodPost, "users", nil, payload, &env); err != nil {
		return nil, err
	}

	var user domain.User
	if err := env.decodeData(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update overwrites a user with the full payload.
func (a *UserAPI) Update(ctx context.Context, id int64, payload UserPayload) error {
	var env envelope
	return a.client.do(ctx, http.MethodPut, "users/"+formatID(id), nil, payload, &env)
}

// Delete removes a user.
func (a *UserAPI) Delete(ctx context.Context, id int64) error {
	var env envelope
	return a.client.do(ctx, http.MethodDelete, "users/"+formatID(id), nil, nil, &env)
}
