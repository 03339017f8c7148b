package service

import (
	"context"

	"github.com/Rawuh-in/console/internal/cache"
	"github.com/Rawuh-in/console/internal/dto"
	"github.com/Rawuh-in/console/internal/session"
	"github.com/Rawuh-in/console/internal/upstream"
)

// AuthService defines the interface for session management
type AuthService interface {
	// Login authenticates against the backend and establishes the
	// console session
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// Logout drops the session and every cached query
	Logout(ctx context.Context) error
}

// authService implements AuthService
type authService struct {
	api     *upstream.AuthAPI
	session session.Store
	cache   *cache.QueryCache
}

// NewAuthService creates a new AuthService
func NewAuthService(api *upstream.AuthAPI, sess session.Store, queryCache *cache.QueryCache) AuthService {
	return &authService{
		api:     api,
		session: sess,
		cache:   queryCache,
	}
}

// Login authenticates against the backend. A successful login replaces
// the session credential and drops every cached query, so nothing
// fetched under the previous identity survives.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	result, err := s.api.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	s.session.Set(result.Token)
	s.cache.Clear(ctx)

	resp := &dto.LoginResponse{}
	if result.User != nil {
		resp.User = dto.NewUserResponse(result.User)
	}
	return resp, nil
}

// Logout drops the session and every cached query
func (s *authService) Logout(ctx context.Context) error {
	s.session.Clear()
	s.cache.Clear(ctx)
	return nil
}
