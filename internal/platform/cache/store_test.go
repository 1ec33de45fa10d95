package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

var errUnexpectedValue = errors.New("unexpected cached value")

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "ref:teams", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_ErrorIsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	wantErr := errors.New("load failed")

	loader := func(context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return nil, wantErr
		}
		return "recovered", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); !errors.Is(err, wantErr) {
		t.Fatalf("expected load error, got %v", err)
	}

	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil {
		t.Fatalf("retry error: %v", err)
	}
	if got, _ := v.(string); got != "recovered" {
		t.Fatalf("expected reload after failure, got %v", v)
	}
}

func TestStore_DeleteInvalidatesKey(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	store.Set(context.Background(), "ref:teams", "teams-v1")

	store.Delete(context.Background(), "ref:teams")

	if _, ok := store.Get(context.Background(), "ref:teams"); ok {
		t.Fatalf("expected key gone after delete")
	}
}

func TestStore_DeletePrefixInvalidatesOnlyMatches(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	store.Set(context.Background(), "ref:teams", "teams")
	store.Set(context.Background(), "ref:teams:page:2", "page2")
	store.Set(context.Background(), "ref:positions", "positions")

	store.DeletePrefix(context.Background(), "ref:teams")

	if _, ok := store.Get(context.Background(), "ref:teams"); ok {
		t.Fatalf("expected ref:teams gone")
	}
	if _, ok := store.Get(context.Background(), "ref:teams:page:2"); ok {
		t.Fatalf("expected ref:teams:page:2 gone")
	}
	if _, ok := store.Get(context.Background(), "ref:positions"); !ok {
		t.Fatalf("unrelated key must survive prefix delete")
	}
}

func TestStore_TTLExpiresEntries(t *testing.T) {
	t.Parallel()

	store := NewStore(10 * time.Millisecond)
	store.Set(context.Background(), "k", "v")

	if _, ok := store.Get(context.Background(), "k"); !ok {
		t.Fatalf("expected fresh entry present")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected entry expired")
	}
}
