package service

import (
	"context"

	"github.com/Rawuh-in/console/internal/cache"
	"github.com/Rawuh-in/console/internal/domain"
	"github.com/Rawuh-in/console/internal/dto"
	"github.com/Rawuh-in/console/internal/upstream"
)

// UserService defines the interface for staff-account management
type UserService interface {
	// List retrieves staff accounts with pagination and filters
	List(ctx context.Context, query *dto.ListQuery) (*dto.ListUsersResponse, error)
	// Create creates a staff account
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	// Update overwrites a staff account
	Update(ctx context.Context, id int64, req *dto.UpdateUserRequest) error
	// Delete removes a staff account
	Delete(ctx context.Context, id int64) error
}

// userService implements UserService
type userService struct {
	api   *upstream.UserAPI
	cache *cache.QueryCache
}

// NewUserService creates a new UserService
func NewUserService(api *upstream.UserAPI, queryCache *cache.QueryCache) UserService {
	return &userService{
		api:   api,
		cache: queryCache,
	}
}

// List retrieves staff accounts with pagination and filters
func (s *userService) List(ctx context.Context, query *dto.ListQuery) (*dto.ListUsersResponse, error) {
	query.SetDefaults()
	params := listParams(query)

	var list upstream.UserList
	key := cache.ListKey(cache.KindUsers, params.CacheKey())
	served, err := s.cache.Get(ctx, key, &list, func(ctx context.Context) (interface{}, error) {
		return s.api.List(ctx, params)
	})
	if err != nil && !served {
		return nil, err
	}

	resp := &dto.ListUsersResponse{
		Users:      make([]dto.UserResponse, 0, len(list.Items)),
		Pagination: dto.NewPaginationResponse(list.Pagination),
	}
	for i := range list.Items {
		resp.Users = append(resp.Users, *dto.NewUserResponse(&list.Items[i]))
	}
	return resp, err
}

// Create creates a staff account
func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	var created *domain.User
	err := s.cache.Mutate(ctx, []cache.Kind{cache.KindUsers}, func(ctx context.Context) error {
		var apiErr error
		created, apiErr = s.api.Create(ctx, upstream.UserPayload{
			Username:    req.Username,
			Password:    req.Password,
			Role:        domain.Role(req.Role),
			DisplayName: req.DisplayName,
			Email:       req.Email,
		})
		return apiErr
	})
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(created), nil
}

// Update overwrites a staff account
func (s *userService) Update(ctx context.Context, id int64, req *dto.UpdateUserRequest) error {
	err := s.cache.Mutate(ctx, []cache.Kind{cache.KindUsers}, func(ctx context.Context) error {
		return s.api.Update(ctx, id, upstream.UserPayload{
			Username:    req.Username,
			Password:    req.Password,
			Role:        domain.Role(req.Role),
			DisplayName: req.DisplayName,
			Email:       req.Email,
		})
	})
	if err != nil {
		if kind, ok := upstream.KindOf(err); ok && kind == upstream.KindNotFound {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// Delete removes a staff account
func (s *userService) Delete(ctx context.Context, id int64) error {
	err := s.cache.Mutate(ctx, []cache.Kind{cache.KindUsers}, func(ctx context.Context) error {
		return s.api.Delete(ctx, id)
	})
	if err != nil {
		if kind, ok := upstream.KindOf(err); ok && kind == upstream.KindNotFound {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
