package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Rawuh-in/console/internal/cache"
	"github.com/Rawuh-in/console/internal/domain"
	"github.com/Rawuh-in/console/internal/session"
	"github.com/Rawuh-in/console/internal/upstream"
	"github.com/Rawuh-in/console/pkg/logger"
)

// fakeBackend is an in-memory stand-in for the Rawuh API speaking its
// envelope wire format.
type fakeBackend struct {
	mu       sync.Mutex
	events   map[int64]*domain.Event
	guests   map[int64]*domain.Guest
	users    map[int64]*domain.User
	nextID   int64
	requests map[string]int
	fail     map[string]bool

	// loginToken is returned by POST /login; empty rejects the login.
	loginToken string

	// lastAuthorization holds the Authorization header of the most
	// recent request, whatever the endpoint.
	lastAuthorization string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		events:     make(map[int64]*domain.Event),
		guests:     make(map[int64]*domain.Guest),
		users:      make(map[int64]*domain.User),
		nextID:     1,
		requests:   make(map[string]int),
		fail:       make(map[string]bool),
		loginToken: "tok-test",
	}
}

func (f *fakeBackend) id() int64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeBackend) count(key string) {
	f.requests[key]++
}

func (f *fakeBackend) hits(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[key]
}

// setFail makes the named read endpoint answer 500 until cleared.
func (f *fakeBackend) setFail(key string, on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[key] = on
}

func (f *fakeBackend) lastAuth() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuthorization
}

func (f *fakeBackend) addEvent(name string, hotels, rooms []string) *domain.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	options := domain.OptionsMap{}
	options.SetStringSlice(domain.KeyHotels, hotels)
	options.SetStringSlice(domain.KeyRooms, rooms)
	encoded, _ := options.Encode()
	e := &domain.Event{ID: f.id(), EventName: name, Options: encoded}
	f.events[e.ID] = e
	return e
}

func (f *fakeBackend) addGuest(eventID int64, name, customData string) *domain.Guest {
	f.mu.Lock()
	defer f.mu.Unlock()
	g := &domain.Guest{ID: f.id(), EventID: eventID, GuestName: name, CustomData: customData}
	f.guests[g.ID] = g
	return g
}

func writeEnvelope(w http.ResponseWriter, status int, data interface{}, pagination *domain.Pagination) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]interface{}{
		"Error":   status < 200 || status > 299,
		"Message": "",
		"Data":    data,
	}
	if pagination != nil {
		body["Pagination"] = pagination
	}
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"Error":   true,
		"Message": message,
	})
}

func pathID(r *http.Request, name string) int64 {
	id, _ := strconv.ParseInt(r.PathValue(name), 10, 64)
	return id
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		if f.loginToken == "" {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"access_token": f.loginToken,
			"user":         domain.User{ID: 99, Username: "admin", Role: domain.RoleSystemAdmin},
		}, nil)
	})

	mux.HandleFunc("GET /rawuh/events", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.count("list-events")
		if f.fail["list-events"] {
			writeError(w, http.StatusInternalServerError, "backend unavailable")
			return
		}
		items := make([]domain.Event, 0, len(f.events))
		for _, e := range f.events {
			items = append(items, *e)
		}
		writeEnvelope(w, http.StatusOK, items, &domain.Pagination{
			Page: 1, Limit: 20, TotalPage: 1, TotalRows: int64(len(items)),
		})
	})

	mux.HandleFunc("POST /rawuh/events", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var payload struct {
			EventName   string `json:"eventName"`
			Description string `json:"description"`
			Options     string `json:"options"`
		}
		json.NewDecoder(r.Body).Decode(&payload)
		e := &domain.Event{
			ID:          f.id(),
			EventName:   payload.EventName,
			Description: payload.Description,
			Options:     payload.Options,
		}
		f.events[e.ID] = e
		writeEnvelope(w, http.StatusCreated, e, nil)
	})

	mux.HandleFunc("GET /rawuh/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.count("get-event")
		if f.fail["get-event"] {
			writeError(w, http.StatusInternalServerError, "backend unavailable")
			return
		}
		e, ok := f.events[pathID(r, "id")]
		if !ok {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeEnvelope(w, http.StatusOK, e, nil)
	})

	mux.HandleFunc("PUT /rawuh/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		e, ok := f.events[pathID(r, "id")]
		if !ok {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		var payload struct {
			EventName   string `json:"eventName"`
			Description string `json:"description"`
			Options     string `json:"options"`
		}
		json.NewDecoder(r.Body).Decode(&payload)
		e.EventName = payload.EventName
		e.Description = payload.Description
		e.Options = payload.Options
		writeEnvelope(w, http.StatusOK, e, nil)
	})

	mux.HandleFunc("DELETE /rawuh/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id := pathID(r, "id")
		if _, ok := f.events[id]; !ok {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		delete(f.events, id)
		writeEnvelope(w, http.StatusOK, map[string]string{}, nil)
	})

	mux.HandleFunc("GET /rawuh/events/{id}/guests", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.count("list-guests")
		if f.fail["list-guests"] {
			writeError(w, http.StatusInternalServerError, "backend unavailable")
			return
		}
		eventID := pathID(r, "id")
		if _, ok := f.events[eventID]; !ok {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		items := make([]domain.Guest, 0)
		for _, g := range f.guests {
			if g.EventID == eventID {
				items = append(items, *g)
			}
		}
		writeEnvelope(w, http.StatusOK, items, &domain.Pagination{
			Page: 1, Limit: 100, TotalPage: 1, TotalRows: int64(len(items)),
		})
	})

	mux.HandleFunc("POST /rawuh/events/{id}/guests", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var payload struct {
			GuestName   string `json:"guestName"`
			Email       string `json:"email"`
			PhoneNumber string `json:"phoneNumber"`
			CustomData  string `json:"customData"`
		}
		json.NewDecoder(r.Body).Decode(&payload)
		g := &domain.Guest{
			ID:          f.id(),
			EventID:     pathID(r, "id"),
			GuestName:   payload.GuestName,
			Email:       payload.Email,
			PhoneNumber: payload.PhoneNumber,
			CustomData:  payload.CustomData,
		}
		f.guests[g.ID] = g
		writeEnvelope(w, http.StatusCreated, g, nil)
	})

	mux.HandleFunc("PUT /rawuh/events/{id}/guests/{gid}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		g, ok := f.guests[pathID(r, "gid")]
		if !ok {
			writeError(w, http.StatusNotFound, "guest not found")
			return
		}
		var payload struct {
			GuestName   string `json:"guestName"`
			Email       string `json:"email"`
			PhoneNumber string `json:"phoneNumber"`
			CustomData  string `json:"customData"`
		}
		json.NewDecoder(r.Body).Decode(&payload)
		g.GuestName = payload.GuestName
		g.Email = payload.Email
		g.PhoneNumber = payload.PhoneNumber
		g.CustomData = payload.CustomData
		writeEnvelope(w, http.StatusOK, g, nil)
	})

	mux.HandleFunc("DELETE /rawuh/events/{id}/guests/{gid}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id := pathID(r, "gid")
		if _, ok := f.guests[id]; !ok {
			writeError(w, http.StatusNotFound, "guest not found")
			return
		}
		delete(f.guests, id)
		writeEnvelope(w, http.StatusOK, map[string]string{}, nil)
	})

	mux.HandleFunc("POST /rawuh/guests/checkin/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		g, ok := f.guests[pathID(r, "id")]
		if !ok {
			writeError(w, http.StatusNotFound, "guest not found")
			return
		}
		data := domain.ParseOptions(g.CustomData)
		data.SetString(domain.KeyCheckedInAt, time.Now().UTC().Format(time.RFC3339))
		g.CustomData, _ = data.Encode()
		writeEnvelope(w, http.StatusOK, g, nil)
	})

	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.count("list-users")
		if f.fail["list-users"] {
			writeError(w, http.StatusInternalServerError, "backend unavailable")
			return
		}
		items := make([]domain.User, 0, len(f.users))
		for _, u := range f.users {
			items = append(items, *u)
		}
		writeEnvelope(w, http.StatusOK, items, &domain.Pagination{
			Page: 1, Limit: 20, TotalPage: 1, TotalRows: int64(len(items)),
		})
	})

	mux.HandleFunc("POST /users", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var payload struct {
			Username    string `json:"username"`
			Role        string `json:"role"`
			DisplayName string `json:"displayName"`
			Email       string `json:"email"`
		}
		json.NewDecoder(r.Body).Decode(&payload)
		u := &domain.User{
			ID:          f.id(),
			Username:    payload.Username,
			Role:        domain.Role(payload.Role),
			DisplayName: payload.DisplayName,
			Email:       payload.Email,
		}
		f.users[u.ID] = u
		writeEnvelope(w, http.StatusCreated, u, nil)
	})

	mux.HandleFunc("PUT /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		u, ok := f.users[pathID(r, "id")]
		if !ok {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		var payload struct {
			Username    string `json:"username"`
			Role        string `json:"role"`
			DisplayName string `json:"displayName"`
			Email       string `json:"email"`
		}
		json.NewDecoder(r.Body).Decode(&payload)
		u.Username = payload.Username
		u.Role = domain.Role(payload.Role)
		u.DisplayName = payload.DisplayName
		u.Email = payload.Email
		writeEnvelope(w, http.StatusOK, u, nil)
	})

	mux.HandleFunc("DELETE /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id := pathID(r, "id")
		if _, ok := f.users[id]; !ok {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		delete(f.users, id)
		writeEnvelope(w, http.StatusOK, map[string]string{}, nil)
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.lastAuthorization = r.Header.Get("Authorization")
		f.mu.Unlock()
		mux.ServeHTTP(w, r)
	})
}

// testEnv wires real services against the fake backend with an
// in-process cache.
type testEnv struct {
	backend *fakeBackend
	server  *httptest.Server
	session *session.MemoryStore
	cache   *cache.QueryCache

	auth   AuthService
	events EventService
	guests GuestService
	users  UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	backend := newFakeBackend()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	sess := session.NewMemoryStore("seed-token")
	log := logger.NewNop()
	tracer := noop.NewTracerProvider().Tracer("test")

	client := upstream.NewClient(upstream.ClientConfig{
		BaseURL: server.URL,
		Project: "rawuh",
		Timeout: 5 * time.Second,
	}, sess, log, tracer, nil)

	queryCache := cache.New(cache.NewMemoryStore(0), cache.Config{FreshFor: time.Minute}, log, nil)

	events := NewEventService(upstream.NewEventAPI(client), queryCache)
	guests := NewGuestService(upstream.NewGuestAPI(client), events, queryCache)

	return &testEnv{
		backend: backend,
		server:  server,
		session: sess,
		cache:   queryCache,
		auth:    NewAuthService(upstream.NewAuthAPI(client), sess, queryCache),
		events:  events,
		guests:  guests,
		users:   NewUserService(upstream.NewUserAPI(client), queryCache),
	}
}
