package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Rawuh-in/console/internal/cache"
	"github.com/Rawuh-in/console/internal/domain"
	"github.com/Rawuh-in/console/internal/dto"
	"github.com/Rawuh-in/console/internal/upstream"
)

var (
	ErrNotCheckedIn      = errors.New("guest has not checked in")
	ErrAlreadyCheckedOut = errors.New("guest has already checked out")
)

// findPageLimit is the page size used when walking an event's guest
// list server-side, for read-modify-write operations and the
// assignment board.
const findPageLimit = 100

// GuestService defines the interface for guest management operations
type GuestService interface {
	// List retrieves one event's guests with pagination and filters
	List(ctx context.Context, eventID int64, query *dto.ListQuery) (*dto.ListGuestsResponse, error)
	// Create adds a guest to an event
	Create(ctx context.Context, eventID int64, req *dto.CreateGuestRequest) (*dto.GuestResponse, error)
	// Update overwrites a guest's contact fields, preserving the
	// custom-data document
	Update(ctx context.Context, eventID, guestID int64, req *dto.UpdateGuestRequest) (*dto.GuestResponse, error)
	// Delete removes a guest from an event
	Delete(ctx context.Context, eventID, guestID int64) error
	// Assign changes a guest's hotel/room assignment
	Assign(ctx context.Context, eventID, guestID int64, req *dto.AssignGuestRequest) (*dto.GuestResponse, error)
	// CheckIn marks a guest as arrived
	CheckIn(ctx context.Context, eventID, guestID int64) error
	// CheckOut marks a checked-in guest as departed
	CheckOut(ctx context.Context, eventID, guestID int64) (*dto.GuestResponse, error)
	// Board builds the assignment overview of one event
	Board(ctx context.Context, eventID int64) (*dto.AssignmentBoardResponse, error)
}

// guestService implements GuestService
type guestService struct {
	api    *upstream.GuestAPI
	events EventService
	cache  *cache.QueryCache
	now    func() time.Time
}

// NewGuestService creates a new GuestService
func NewGuestService(api *upstream.GuestAPI, events EventService, queryCache *cache.QueryCache) GuestService {
	return &guestService{
		api:    api,
		events: events,
		cache:  queryCache,
		now:    time.Now,
	}
}

// List retrieves one event's guests with pagination and filters
func (s *guestService) List(ctx context.Context, eventID int64, query *dto.ListQuery) (*dto.ListGuestsResponse, error) {
	query.SetDefaults()
	params := listParams(query)

	var list upstream.GuestList
	key := cache.ListKey(cache.KindGuests, guestListKey(eventID, params))
	served, err := s.cache.Get(ctx, key, &list, func(ctx context.Context) (interface{}, error) {
		return s.api.List(ctx, eventID, params)
	})
	if err != nil && !served {
		return nil, err
	}

	resp := &dto.ListGuestsResponse{
		Guests:     make([]dto.GuestResponse, 0, len(list.Items)),
		Pagination: dto.NewPaginationResponse(list.Pagination),
	}
	for i := range list.Items {
		resp.Guests = append(resp.Guests, *dto.NewGuestResponse(&list.Items[i]))
	}
	return resp, err
}

// Create adds a guest to an event
func (s *guestService) Create(ctx context.Context, eventID int64, req *dto.CreateGuestRequest) (*dto.GuestResponse, error) {
	customData := ""
	if req.Hotel != "" || req.Room != "" {
		data := domain.OptionsMap{}
		data.SetString(domain.KeyHotel, req.Hotel)
		data.SetString(domain.KeyRoom, req.Room)
		encoded, err := data.Encode()
		if err != nil {
			return nil, err
		}
		customData = encoded
	}

	var created *domain.Guest
	err := s.cache.Mutate(ctx, []cache.Kind{cache.KindGuests}, func(ctx context.Context) error {
		var apiErr error
		created, apiErr = s.api.Create(ctx, eventID, upstream.GuestPayload{
			GuestName:   req.GuestName,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
			CustomData:  customData,
			EventID:     eventID,
		})
		return apiErr
	})
	if err != nil {
		return nil, err
	}
	return dto.NewGuestResponse(created), nil
}

// Update overwrites a guest's contact fields. The backend replaces
// the full record, so the current custom-data document is carried
// over unchanged.
func (s *guestService) Update(ctx context.Context, eventID, guestID int64, req *dto.UpdateGuestRequest) (*dto.GuestResponse, error) {
	current, err := s.findGuest(ctx, eventID, guestID)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.GuestName = req.GuestName
	updated.Email = req.Email
	updated.PhoneNumber = req.PhoneNumber

	if err := s.pushGuest(ctx, eventID, &updated); err != nil {
		return nil, err
	}
	return dto.NewGuestResponse(&updated), nil
}

// Delete removes a guest from an event
func (s *guestService) Delete(ctx context.Context, eventID, guestID int64) error {
	err := s.cache.Mutate(ctx, []cache.Kind{cache.KindGuests}, func(ctx context.Context) error {
		return s.api.Delete(ctx, eventID, guestID)
	})
	if err != nil {
		if kind, ok := upstream.KindOf(err); ok && kind == upstream.KindNotFound {
			return ErrGuestNotFound
		}
		return err
	}
	return nil
}

// Assign changes a guest's hotel/room assignment by mutating the
// custom-data document and writing the full record back. Fields not
// present in the request keep their current value; an empty string
// clears the assignment.
func (s *guestService) Assign(ctx context.Context, eventID, guestID int64, req *dto.AssignGuestRequest) (*dto.GuestResponse, error) {
	current, err := s.findGuest(ctx, eventID, guestID)
	if err != nil {
		return nil, err
	}

	data := current.ParsedCustomData()
	if req.Hotel != nil {
		data.SetString(domain.KeyHotel, *req.Hotel)
	}
	if req.Room != nil {
		data.SetString(domain.KeyRoom, *req.Room)
	}
	encoded, err := data.Encode()
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.CustomData = encoded
	if err := s.pushGuest(ctx, eventID, &updated); err != nil {
		return nil, err
	}
	return dto.NewGuestResponse(&updated), nil
}

// CheckIn marks a guest as arrived. The backend owns the check-in
// timestamp.
func (s *guestService) CheckIn(ctx context.Context, eventID, guestID int64) error {
	err := s.cache.Mutate(ctx, []cache.Kind{cache.KindGuests}, func(ctx context.Context) error {
		return s.api.CheckIn(ctx, guestID)
	})
	if err != nil {
		if kind, ok := upstream.KindOf(err); ok && kind == upstream.KindNotFound {
			return ErrGuestNotFound
		}
		return err
	}
	return nil
}

// CheckOut marks a checked-in guest as departed by stamping the
// custom-data document. A guest who never checked in cannot check
// out.
func (s *guestService) CheckOut(ctx context.Context, eventID, guestID int64) (*dto.GuestResponse, error) {
	current, err := s.findGuest(ctx, eventID, guestID)
	if err != nil {
		return nil, err
	}

	data := current.ParsedCustomData()
	if data.GetString(domain.KeyCheckedInAt) == "" {
		return nil, ErrNotCheckedIn
	}
	if data.GetString(domain.KeyCheckedOutAt) != "" {
		return nil, ErrAlreadyCheckedOut
	}

	data.SetString(domain.KeyCheckedOutAt, s.now().UTC().Format(time.RFC3339))
	encoded, err := data.Encode()
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.CustomData = encoded
	if err := s.pushGuest(ctx, eventID, &updated); err != nil {
		return nil, err
	}
	return dto.NewGuestResponse(&updated), nil
}

// Board builds the assignment overview of one event: configured
// hotels and rooms, every guest with derived status, and totals.
// A stale event header is surfaced the way list reads are: the board
// comes back together with the refresh error.
func (s *guestService) Board(ctx context.Context, eventID int64) (*dto.AssignmentBoardResponse, error) {
	event, staleErr := s.events.Get(ctx, eventID)
	if staleErr != nil && event == nil {
		return nil, staleErr
	}

	guests, err := s.allGuests(ctx, eventID)
	if err != nil {
		return nil, err
	}

	board := &dto.AssignmentBoardResponse{
		EventID:   event.ID,
		EventName: event.EventName,
		Hotels:    event.Hotels,
		Rooms:     event.Rooms,
		Guests:    make([]dto.GuestResponse, 0, len(guests)),
	}
	for i := range guests {
		resp := dto.NewGuestResponse(&guests[i])
		board.Guests = append(board.Guests, *resp)
		switch resp.Status {
		case domain.StatusNotAssigned:
			board.Totals.NotAssigned++
		case domain.StatusAssigned:
			board.Totals.Assigned++
		case domain.StatusCheckedIn:
			board.Totals.CheckedIn++
		case domain.StatusCheckedOut:
			board.Totals.CheckedOut++
		}
	}
	return board, staleErr
}

// findGuest walks the event's guest pages server-side until the guest
// turns up. The backend has no single-guest read, so read-modify-write
// operations locate the current record this way, bypassing the cache
// to avoid writing over concurrent edits with stale state.
func (s *guestService) findGuest(ctx context.Context, eventID, guestID int64) (*domain.Guest, error) {
	for page := 1; ; page++ {
		list, err := s.api.List(ctx, eventID, upstream.ListParams{Page: page, Limit: findPageLimit})
		if err != nil {
			if kind, ok := upstream.KindOf(err); ok && kind == upstream.KindNotFound {
				return nil, ErrEventNotFound
			}
			return nil, err
		}
		for i := range list.Items {
			if list.Items[i].ID == guestID {
				return &list.Items[i], nil
			}
		}
		if len(list.Items) < findPageLimit || lastPage(list.Pagination, page) {
			return nil, ErrGuestNotFound
		}
	}
}

// allGuests collects every guest of an event across pages.
func (s *guestService) allGuests(ctx context.Context, eventID int64) ([]domain.Guest, error) {
	var all []domain.Guest
	for page := 1; ; page++ {
		list, err := s.api.List(ctx, eventID, upstream.ListParams{Page: page, Limit: findPageLimit})
		if err != nil {
			if kind, ok := upstream.KindOf(err); ok && kind == upstream.KindNotFound {
				return nil, ErrEventNotFound
			}
			return nil, err
		}
		all = append(all, list.Items...)
		if len(list.Items) < findPageLimit || lastPage(list.Pagination, page) {
			return all, nil
		}
	}
}

// pushGuest writes a full guest record back and invalidates cached
// guest queries.
func (s *guestService) pushGuest(ctx context.Context, eventID int64, guest *domain.Guest) error {
	return s.cache.Mutate(ctx, []cache.Kind{cache.KindGuests}, func(ctx context.Context) error {
		return s.api.Update(ctx, eventID, guest.ID, upstream.GuestPayload{
			GuestName:   guest.GuestName,
			Email:       guest.Email,
			PhoneNumber: guest.PhoneNumber,
			CustomData:  guest.CustomData,
			EventID:     eventID,
		})
	})
}

func lastPage(p *domain.Pagination, page int) bool {
	return p != nil && p.TotalPage > 0 && page >= p.TotalPage
}

// guestListKey renders the cache parameter string for an event-scoped
// guest query.
func guestListKey(eventID int64, params upstream.ListParams) string {
	suffix := params.CacheKey()
	key := "event=" + strconv.FormatInt(eventID, 10)
	if suffix == "" {
		return key
	}
	return key + "&" + suffix
}
