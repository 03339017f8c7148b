package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Rawuh-in/console/internal/upstream"
	"github.com/Rawuh-in/console/pkg/logger"
	"github.com/Rawuh-in/console/pkg/telemetry"
)

const (
	defaultFreshFor   = 30 * time.Second
	defaultRetryDelay = 100 * time.Millisecond
	// readRetries bounds refetch attempts for a failed read. Mutations
	// are never retried by this layer.
	readRetries = 1
)

// Config tunes the query cache.
type Config struct {
	// FreshFor is the window during which a cached result is served
	// without touching the backend. Defaults to 30s.
	FreshFor time.Duration
}

// QueryCache coordinates reads and mutations against the backend:
// fresh cached reads short-circuit, stale or missing entries are
// fetched once per key regardless of caller count, and mutations mark
// the affected kind stale on success.
type QueryCache struct {
	store    Store
	freshFor time.Duration
	group    singleflight.Group
	log      *logger.Logger
	metrics  *telemetry.Metrics

	// generation counters; bumping one detaches every in-flight fetch
	// it covers, so a response that raced a logout or an invalidation
	// is returned to its caller but never stored.
	mu      sync.Mutex
	gen     uint64
	kindGen map[Kind]uint64
}

// LoadFunc fetches the value for one key from the backend.
type LoadFunc func(ctx context.Context) (interface{}, error)

// New creates a QueryCache on top of the given entry store.
func New(store Store, cfg Config, log *logger.Logger, metrics *telemetry.Metrics) *QueryCache {
	freshFor := cfg.FreshFor
	if freshFor <= 0 {
		freshFor = defaultFreshFor
	}

	return &QueryCache{
		store:    store,
		freshFor: freshFor,
		log:      log,
		metrics:  metrics,
		kindGen:  make(map[Kind]uint64),
	}
}

// Get resolves one query. dest receives the result (JSON round-trip,
// so any json-encodable value works). The bool reports whether dest
// was populated; an empty list filled from cache still counts, so
// callers must not infer it from the value.
//
// Outcomes:
//   - fresh cache entry: dest is filled, (true, nil), no network call.
//   - miss or stale entry: load runs (shared across concurrent callers
//     of the same key, retried once when retryable). On success dest
//     gets the new value, (true, nil).
//   - load failure with a cached entry present: dest gets the previous
//     value, (true, err); callers can show stale data alongside the
//     failure.
//   - load failure without cached data: (false, err).
func (q *QueryCache) Get(ctx context.Context, key Key, dest interface{}, load LoadFunc) (bool, error) {
	storeKey := key.String()

	entry, err := q.store.Get(ctx, storeKey)
	if err != nil {
		q.log.WarnContext(ctx, "cache store read failed", zap.String("key", storeKey), zap.Error(err))
		entry = nil
	}

	if entry != nil && !entry.Stale && time.Since(entry.FetchedAt) < q.freshFor {
		q.metrics.RecordCacheHit(ctx, string(key.Kind))
		if err := json.Unmarshal(entry.Payload, dest); err != nil {
			return false, err
		}
		return true, nil
	}

	q.metrics.RecordCacheMiss(ctx, string(key.Kind))

	payload, fetchErr := q.fetch(ctx, key, storeKey, load)
	if fetchErr != nil {
		if entry != nil {
			// Keep the previous value visible next to the error.
			if err := json.Unmarshal(entry.Payload, dest); err == nil {
				q.metrics.RecordCacheStaleServed(ctx, string(key.Kind))
				return true, fetchErr
			}
		}
		return false, fetchErr
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, err
	}
	return true, nil
}

// fetch loads a key through singleflight. The generation snapshot is
// part of the flight key: callers arriving after an invalidation never
// join a flight that started before it.
func (q *QueryCache) fetch(ctx context.Context, key Key, storeKey string, load LoadFunc) ([]byte, error) {
	gen := q.snapshot(key.Kind)
	flightKey := storeKey + "#" + strconv.FormatUint(gen, 10)

	v, err, _ := q.group.Do(flightKey, func() (interface{}, error) {
		value, err := q.loadWithRetry(ctx, key, load)
		if err != nil {
			return nil, err
		}

		payload, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode cache entry: %w", err)
		}

		if q.snapshot(key.Kind) == gen {
			entry := &Entry{Payload: payload, FetchedAt: time.Now()}
			if err := q.store.Set(ctx, storeKey, entry); err != nil {
				q.log.WarnContext(ctx, "cache store write failed", zap.String("key", storeKey), zap.Error(err))
			}
		} else {
			// The world moved while this fetch was in flight; hand the
			// result to whoever asked but do not let it shadow newer data.
			q.log.DebugContext(ctx, "discarding outdated fetch result", zap.String("key", storeKey))
		}
		return payload, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (q *QueryCache) loadWithRetry(ctx context.Context, key Key, load LoadFunc) (interface{}, error) {
	value, err := load(ctx)
	for attempt := 0; err != nil && attempt < readRetries && upstream.IsRetryable(err); attempt++ {
		q.log.DebugContext(ctx, "retrying failed read",
			zap.String("key", key.String()),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, err
		case <-time.After(defaultRetryDelay):
		}
		value, err = load(ctx)
	}
	return value, err
}

// Invalidate marks every cached query of kind stale and detaches
// in-flight fetches for it. Called after every successful mutation;
// a read that follows an awaited mutation refetches.
func (q *QueryCache) Invalidate(ctx context.Context, kind Kind) {
	q.mu.Lock()
	q.kindGen[kind]++
	q.mu.Unlock()

	if err := q.store.MarkStale(ctx, kindPrefix(kind)); err != nil {
		q.log.WarnContext(ctx, "cache invalidation failed", zap.String("kind", string(kind)), zap.Error(err))
	}
}

// Clear drops every cached entry and detaches all in-flight fetches.
// A logged-out session must not serve another identity's data.
func (q *QueryCache) Clear(ctx context.Context) {
	q.mu.Lock()
	q.gen++
	q.mu.Unlock()

	if err := q.store.Flush(ctx); err != nil {
		q.log.WarnContext(ctx, "cache flush failed", zap.Error(err))
	}
}

// Mutate runs fn and, only on success, invalidates the given kinds.
// Mutations get no retry: the caller sees the first failure unchanged.
func (q *QueryCache) Mutate(ctx context.Context, kinds []Kind, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	for _, kind := range kinds {
		q.Invalidate(ctx, kind)
	}
	return nil
}

// snapshot combines the global and per-kind generation counters.
func (q *QueryCache) snapshot(kind Kind) uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.gen<<32 | q.kindGen[kind]
}
