package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Rawuh-in/console/internal/upstream"
	"github.com/Rawuh-in/console/pkg/logger"
)

func newTestCache(freshFor time.Duration) *QueryCache {
	return New(NewMemoryStore(0), Config{FreshFor: freshFor}, logger.NewNop(), nil)
}

func TestGetCachesWithinFreshWindow(t *testing.T) {
	q := newTestCache(time.Minute)
	ctx := context.Background()
	key := ListKey(KindEvents, "page=1")

	var calls int32
	load := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return []string{"gala"}, nil
	}

	for i := 0; i < 3; i++ {
		var got []string
		if _, err := q.Get(ctx, key, &got, load); err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
		if len(got) != 1 || got[0] != "gala" {
			t.Fatalf("get %d: got %v", i, got)
		}
	}

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("expected 1 backend call, got %d", n)
	}
}

func TestDistinctParamsDoNotShareEntries(t *testing.T) {
	q := newTestCache(time.Minute)
	ctx := context.Background()

	var calls int32
	load := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return "x", nil
	}

	var got string
	if _, err := q.Get(ctx, ListKey(KindGuests, "event=1"), &got, load); err != nil {
		t.Fatal(err)
	}
	if _, err := q.Get(ctx, ListKey(KindGuests, "event=2"), &got, load); err != nil {
		t.Fatal(err)
	}

	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("expected 2 backend calls for distinct params, got %d", n)
	}
}

func TestConcurrentIdenticalReadsShareOneCall(t *testing.T) {
	q := newTestCache(time.Minute)
	ctx := context.Background()
	key := ListKey(KindGuests, "event=7")

	var calls int32
	release := make(chan struct{})
	load := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []int{1, 2, 3}, nil
	}

	const readers = 8
	var wg sync.WaitGroup
	errs := make([]error, readers)
	results := make([][]int, readers)

	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = q.Get(ctx, key, &results[i], load)
		}(i)
	}

	// Let every reader reach the in-flight call before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < readers; i++ {
		if errs[i] != nil {
			t.Fatalf("reader %d: %v", i, errs[i])
		}
		if len(results[i]) != 3 {
			t.Fatalf("reader %d: got %v", i, results[i])
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("expected 1 shared backend call, got %d", n)
	}
}

func TestMutateInvalidatesKind(t *testing.T) {
	q := newTestCache(time.Minute)
	ctx := context.Background()
	key := ListKey(KindGuests, "event=7")

	version := int32(1)
	load := func(ctx context.Context) (interface{}, error) {
		return int(atomic.LoadInt32(&version)), nil
	}

	var got int
	if _, err := q.Get(ctx, key, &got, load); err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Fatalf("initial read = %d", got)
	}

	err := q.Mutate(ctx, []Kind{KindGuests}, func(ctx context.Context) error {
		atomic.StoreInt32(&version, 2)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	// The pre-mutation value must not be served after the mutation.
	if _, err := q.Get(ctx, key, &got, load); err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("post-mutation read = %d, want 2", got)
	}
}

func TestFailedMutationDoesNotInvalidate(t *testing.T) {
	q := newTestCache(time.Minute)
	ctx := context.Background()
	key := ListKey(KindEvents, "")

	var calls int32
	load := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return "cached", nil
	}

	var got string
	if _, err := q.Get(ctx, key, &got, load); err != nil {
		t.Fatal(err)
	}

	mutErr := errors.New("backend rejected it")
	if err := q.Mutate(ctx, []Kind{KindEvents}, func(ctx context.Context) error {
		return mutErr
	}); !errors.Is(err, mutErr) {
		t.Fatalf("Mutate error = %v, want %v", err, mutErr)
	}

	if _, err := q.Get(ctx, key, &got, load); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("cache should survive a failed mutation, got %d calls", n)
	}
}

func TestInvalidationOnlyAffectsItsKind(t *testing.T) {
	q := newTestCache(time.Minute)
	ctx := context.Background()

	var eventCalls, userCalls int32
	loadEvents := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&eventCalls, 1)
		return "events", nil
	}
	loadUsers := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&userCalls, 1)
		return "users", nil
	}

	var got string
	if _, err := q.Get(ctx, ListKey(KindEvents, ""), &got, loadEvents); err != nil {
		t.Fatal(err)
	}
	if _, err := q.Get(ctx, ListKey(KindUsers, ""), &got, loadUsers); err != nil {
		t.Fatal(err)
	}

	q.Invalidate(ctx, KindEvents)

	if _, err := q.Get(ctx, ListKey(KindEvents, ""), &got, loadEvents); err != nil {
		t.Fatal(err)
	}
	if _, err := q.Get(ctx, ListKey(KindUsers, ""), &got, loadUsers); err != nil {
		t.Fatal(err)
	}

	if n := atomic.LoadInt32(&eventCalls); n != 2 {
		t.Errorf("event calls = %d, want 2", n)
	}
	if n := atomic.LoadInt32(&userCalls); n != 1 {
		t.Errorf("user calls = %d, want 1", n)
	}
}

func TestRetryableReadRetriesOnce(t *testing.T) {
	q := newTestCache(time.Minute)
	ctx := context.Background()

	var calls int32
	load := func(ctx context.Context) (interface{}, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, &upstream.Error{Kind: upstream.KindServer, StatusCode: 503, Message: "overloaded"}
		}
		return "recovered", nil
	}

	var got string
	if _, err := q.Get(ctx, ListKey(KindEvents, ""), &got, load); err != nil {
		t.Fatalf("expected the retry to recover, got %v", err)
	}
	if got != "recovered" {
		t.Errorf("got %q", got)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("calls = %d, want 2", n)
	}
}

func TestRetryIsBounded(t *testing.T) {
	q := newTestCache(time.Minute)
	ctx := context.Background()

	var calls int32
	load := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return nil, &upstream.Error{Kind: upstream.KindTransport, Message: "unreachable"}
	}

	var got string
	if _, err := q.Get(ctx, ListKey(KindEvents, ""), &got, load); err == nil {
		t.Fatal("expected error")
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("calls = %d, want initial + one retry", n)
	}
}

func TestValidationErrorsAreNotRetried(t *testing.T) {
	q := newTestCache(time.Minute)
	ctx := context.Background()

	var calls int32
	load := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return nil, &upstream.Error{Kind: upstream.KindValidation, StatusCode: 422, Message: "bad filter"}
	}

	var got string
	if _, err := q.Get(ctx, ListKey(KindEvents, ""), &got, load); err == nil {
		t.Fatal("expected error")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}

func TestFailedRefreshServesStaleValueWithError(t *testing.T) {
	q := newTestCache(time.Minute)
	ctx := context.Background()
	key := ListKey(KindGuests, "event=7")

	healthy := true
	load := func(ctx context.Context) (interface{}, error) {
		if healthy {
			return "good data", nil
		}
		return nil, &upstream.Error{Kind: upstream.KindValidation, StatusCode: 400, Message: "broken"}
	}

	var got string
	if _, err := q.Get(ctx, key, &got, load); err != nil {
		t.Fatal(err)
	}

	healthy = false
	q.Invalidate(ctx, KindGuests)

	got = ""
	served, err := q.Get(ctx, key, &got, load)
	if err == nil {
		t.Fatal("expected the refresh error to surface")
	}
	if !served {
		t.Error("served = false, want true for a stale value")
	}
	if got != "good data" {
		t.Errorf("stale value not served: got %q", got)
	}
}

func TestStaleEmptyListStillCountsAsServed(t *testing.T) {
	q := newTestCache(time.Minute)
	ctx := context.Background()
	key := ListKey(KindGuests, "event=9")

	healthy := true
	load := func(ctx context.Context) (interface{}, error) {
		if healthy {
			return []string{}, nil
		}
		return nil, &upstream.Error{Kind: upstream.KindServer, StatusCode: 500, Message: "down"}
	}

	var got []string
	if _, err := q.Get(ctx, key, &got, load); err != nil {
		t.Fatal(err)
	}

	healthy = false
	q.Invalidate(ctx, KindGuests)

	got = nil
	served, err := q.Get(ctx, key, &got, load)
	if err == nil {
		t.Fatal("expected the refresh error to surface")
	}
	if !served {
		t.Error("served = false, want true for a cached empty list")
	}
	if got == nil || len(got) != 0 {
		t.Errorf("stale empty list not served: got %v", got)
	}
}

func TestErrorWithoutCachedValue(t *testing.T) {
	q := newTestCache(time.Minute)
	ctx := context.Background()

	load := func(ctx context.Context) (interface{}, error) {
		return nil, &upstream.Error{Kind: upstream.KindAuth, StatusCode: 401, Message: "denied"}
	}

	var got string
	served, err := q.Get(ctx, ListKey(KindUsers, ""), &got, load)
	if err == nil {
		t.Fatal("expected error")
	}
	if served {
		t.Error("served = true, want false without cached data")
	}
	if got != "" {
		t.Errorf("dest should stay zero-valued, got %q", got)
	}
}

func TestClearForcesFreshFetch(t *testing.T) {
	q := newTestCache(time.Minute)
	ctx := context.Background()
	key := ListKey(KindEvents, "")

	var calls int32
	load := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return "data", nil
	}

	var got string
	if _, err := q.Get(ctx, key, &got, load); err != nil {
		t.Fatal(err)
	}

	q.Clear(ctx)

	if _, err := q.Get(ctx, key, &got, load); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("calls = %d, want a fresh fetch after Clear", n)
	}
}

func TestInFlightResultDiscardedAfterClear(t *testing.T) {
	q := newTestCache(time.Minute)
	ctx := context.Background()
	key := ListKey(KindGuests, "event=1")

	started := make(chan struct{})
	release := make(chan struct{})
	firstLoad := func(ctx context.Context) (interface{}, error) {
		close(started)
		<-release
		return "old identity data", nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		var got string
		_, _ = q.Get(ctx, key, &got, firstLoad)
	}()

	<-started
	// The session ends while the fetch is still in flight.
	q.Clear(ctx)
	close(release)
	<-done

	// The raced response must not have been cached: the next read hits
	// the backend again.
	var calls int32
	var got string
	_, err := q.Get(ctx, key, &got, func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return "new identity data", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "new identity data" {
		t.Errorf("got %q; stale in-flight response leaked into the cache", got)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}

func TestInFlightResultDiscardedAfterInvalidate(t *testing.T) {
	q := newTestCache(time.Minute)
	ctx := context.Background()
	key := ListKey(KindGuests, "event=1")

	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		var got string
		_, _ = q.Get(ctx, key, &got, func(ctx context.Context) (interface{}, error) {
			close(started)
			<-release
			return "pre-mutation list", nil
		})
	}()

	<-started
	// A mutation lands while the read is still in flight.
	q.Invalidate(ctx, KindGuests)
	close(release)
	<-done

	var got string
	_, err := q.Get(ctx, key, &got, func(ctx context.Context) (interface{}, error) {
		return "post-mutation list", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "post-mutation list" {
		t.Errorf("got %q; the raced read shadowed the mutation", got)
	}
}

func TestExpiredFreshWindowRefetches(t *testing.T) {
	q := newTestCache(10 * time.Millisecond)
	ctx := context.Background()
	key := ListKey(KindEvents, "")

	var calls int32
	load := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return "data", nil
	}

	var got string
	if _, err := q.Get(ctx, key, &got, load); err != nil {
		t.Fatal(err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, err := q.Get(ctx, key, &got, load); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("calls = %d, want refetch after the fresh window", n)
	}
}
