package service

import (
	"context"
	"errors"

	"github.com/Rawuh-in/console/internal/cache"
	"github.com/Rawuh-in/console/internal/domain"
	"github.com/Rawuh-in/console/internal/dto"
	"github.com/Rawuh-in/console/internal/upstream"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrGuestNotFound = errors.New("guest not found")
	ErrUserNotFound  = errors.New("user not found")
)

// EventService defines the interface for event management operations
type EventService interface {
	// List retrieves events with pagination and filters
	List(ctx context.Context, query *dto.ListQuery) (*dto.ListEventsResponse, error)
	// Get retrieves a single event by ID
	Get(ctx context.Context, id int64) (*dto.EventResponse, error)
	// Create creates a new event
	Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	// Update overwrites an event
	Update(ctx context.Context, id int64, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	// Delete removes an event
	Delete(ctx context.Context, id int64) error
}

// eventService implements EventService
type eventService struct {
	api   *upstream.EventAPI
	cache *cache.QueryCache
}

// NewEventService creates a new EventService
func NewEventService(api *upstream.EventAPI, queryCache *cache.QueryCache) EventService {
	return &eventService{
		api:   api,
		cache: queryCache,
	}
}

// List retrieves events with pagination and filters. Results are
// served from the query cache; a failed refresh still returns the
// last known page alongside the error.
func (s *eventService) List(ctx context.Context, query *dto.ListQuery) (*dto.ListEventsResponse, error) {
	query.SetDefaults()
	params := listParams(query)

	var list upstream.EventList
	key := cache.ListKey(cache.KindEvents, params.CacheKey())
	served, err := s.cache.Get(ctx, key, &list, func(ctx context.Context) (interface{}, error) {
		return s.api.List(ctx, params)
	})
	if err != nil && !served {
		return nil, err
	}

	resp := &dto.ListEventsResponse{
		Events:     make([]dto.EventResponse, 0, len(list.Items)),
		Pagination: dto.NewPaginationResponse(list.Pagination),
	}
	for i := range list.Items {
		resp.Events = append(resp.Events, *dto.NewEventResponse(&list.Items[i]))
	}
	return resp, err
}

// Get retrieves a single event by ID
func (s *eventService) Get(ctx context.Context, id int64) (*dto.EventResponse, error) {
	var event domain.Event
	key := cache.DetailKey(cache.KindEvents, id)
	served, err := s.cache.Get(ctx, key, &event, func(ctx context.Context) (interface{}, error) {
		return s.api.Get(ctx, id)
	})
	if err != nil {
		if !served {
			if kind, ok := upstream.KindOf(err); ok && kind == upstream.KindNotFound {
				return nil, ErrEventNotFound
			}
			return nil, err
		}
		return dto.NewEventResponse(&event), err
	}
	return dto.NewEventResponse(&event), nil
}

// Create creates a new event
func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	options, err := encodeEventOptions(req.Hotels, req.Rooms)
	if err != nil {
		return nil, err
	}

	var created *domain.Event
	err = s.cache.Mutate(ctx, []cache.Kind{cache.KindEvents}, func(ctx context.Context) error {
		var apiErr error
		created, apiErr = s.api.Create(ctx, upstream.EventPayload{
			EventName:   req.EventName,
			Description: req.Description,
			Options:     options,
		})
		return apiErr
	})
	if err != nil {
		return nil, err
	}
	return dto.NewEventResponse(created), nil
}

// Update overwrites an event. The backend replaces the full record,
// so the request carries every mutable field.
func (s *eventService) Update(ctx context.Context, id int64, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	options, err := encodeEventOptions(req.Hotels, req.Rooms)
	if err != nil {
		return nil, err
	}

	err = s.cache.Mutate(ctx, []cache.Kind{cache.KindEvents}, func(ctx context.Context) error {
		return s.api.Update(ctx, id, upstream.EventPayload{
			EventName:   req.EventName,
			Description: req.Description,
			Options:     options,
		})
	})
	if err != nil {
		if kind, ok := upstream.KindOf(err); ok && kind == upstream.KindNotFound {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete removes an event
func (s *eventService) Delete(ctx context.Context, id int64) error {
	err := s.cache.Mutate(ctx, []cache.Kind{cache.KindEvents, cache.KindGuests}, func(ctx context.Context) error {
		return s.api.Delete(ctx, id)
	})
	if err != nil {
		if kind, ok := upstream.KindOf(err); ok && kind == upstream.KindNotFound {
			return ErrEventNotFound
		}
		return err
	}
	return nil
}

func listParams(query *dto.ListQuery) upstream.ListParams {
	return upstream.ListParams{
		Page:  query.Page,
		Limit: query.Limit,
		Sort:  query.Sort,
		Dir:   query.Dir,
		Query: query.Query,
	}
}

func encodeEventOptions(hotels, rooms []string) (string, error) {
	if len(hotels) == 0 && len(rooms) == 0 {
		return "", nil
	}
	options := domain.OptionsMap{}
	options.SetStringSlice(domain.KeyHotels, hotels)
	options.SetStringSlice(domain.KeyRooms, rooms)
	return options.Encode()
}
