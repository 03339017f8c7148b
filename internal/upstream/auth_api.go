package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Rawuh-in/console/internal/domain"
)

var errNoToken = errors.New("login succeeded but no token in response")

// LoginResult carries the bearer token and the authenticated profile.
type LoginResult struct {
	Token string
	User  *domain.User
}

// AuthAPI exposes the login operation.
type AuthAPI struct {
	client *Client
}

// NewAuthAPI creates the auth resource client.
func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

// loginBody tolerates the token locations observed across backend
// versions: top-level access_token (canonical), top-level accessToken
// or token, and the same fields nested under Data. Compatibility shim;
// only the canonical location is emitted by current backends.
type loginBody struct {
	Error       bool            `json:"Error"`
	Message     string          `json:"Message"`
	AccessToken string          `json:"access_token"`
	AltToken    string          `json:"accessToken"`
	BareToken   string          `json:"token"`
	User        *domain.User    `json:"user"`
	Data        json.RawMessage `json:"Data"`
}

func (b *loginBody) token() string {
	switch {
	case b.AccessToken != "":
		return b.AccessToken
	case b.AltToken != "":
		return b.AltToken
	default:
		return b.BareToken
	}
}

// Login authenticates against the backend and returns the normalized
// token and profile. Storing the token in the session store is the
// auth service's job, not this layer's.
func (a *AuthAPI) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	payload := map[string]string{"username": username, "password": password}

	data, err := a.client.doRaw(ctx, http.MethodPost, "login", nil, payload)
	if err != nil {
		return nil, err
	}

	var body loginBody
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, decodeError(err)
	}
	if body.Error {
		return nil, statusError(http.StatusOK, body.Message)
	}

	result := &LoginResult{Token: body.token(), User: body.User}
	if (result.Token == "" || result.User == nil) && len(body.Data) > 0 {
		var nested loginBody
		if err := json.Unmarshal(body.Data, &nested); err == nil {
			if result.Token == "" {
				result.Token = nested.token()
			}
			if result.User == nil {
				result.User = nested.User
			}
		}
	}

	if result.Token == "" {
		return nil, decodeError(errNoToken)
	}
	return result, nil
}
