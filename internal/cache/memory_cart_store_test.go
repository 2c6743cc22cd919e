package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/minishop/internal/models"
)

func TestMemoryCartStoreSerializesSameSessionUpdates(t *testing.T) {
	store := NewMemoryCartStore(time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, "sess-1", func(cart models.Cart) (models.Cart, error) {
				cart["1"] += 2
				return cart, nil
			})
			if err != nil {
				t.Errorf("update failed: %v", err)
			}
		}()
	}
	wg.Wait()

	cart, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cart["1"] != 100 {
		t.Fatalf("qty want 100 got %d", cart["1"])
	}
	if len(store.locks) != 0 {
		t.Fatalf("session locks should be released, got %d", len(store.locks))
	}
}

func holdMemoryCartLock(t *testing.T, store *MemoryCartStore, sessionID string) (release func()) {
	t.Helper()
	entered := make(chan struct{})
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		_, _ = store.Update(context.Background(), sessionID, func(cart models.Cart) (models.Cart, error) {
			close(entered)
			<-done
			cart["1"] = 1
			return cart, nil
		})
	}()
	<-entered
	return func() {
		close(done)
		<-finished
	}
}

func TestMemoryCartStoreBusyAfterLockWait(t *testing.T) {
	store := NewMemoryCartStore(time.Hour)
	store.lockWait = 50 * time.Millisecond
	release := holdMemoryCartLock(t, store, "s")

	start := time.Now()
	_, err := store.Update(context.Background(), "s", func(cart models.Cart) (models.Cart, error) {
		t.Errorf("mutator must not run while the session is locked")
		return cart, nil
	})
	if !errors.Is(err, ErrCartBusy) {
		t.Fatalf("want ErrCartBusy got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("busy error took too long: %v", elapsed)
	}

	release()
	cart, err := store.Load(context.Background(), "s")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cart["1"] != 1 {
		t.Fatalf("holder update should be saved, got %v", cart)
	}
	if len(store.locks) != 0 {
		t.Fatalf("session locks should be released, got %d", len(store.locks))
	}
}

func TestMemoryCartStoreLockHonorsContext(t *testing.T) {
	store := NewMemoryCartStore(time.Hour)
	release := holdMemoryCartLock(t, store, "s")
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := store.Update(ctx, "s", func(cart models.Cart) (models.Cart, error) {
		return cart, nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline exceeded got %v", err)
	}
}

func TestMemoryCartStoreMutatorErrorKeepsCart(t *testing.T) {
	store := NewMemoryCartStore(time.Hour)
	ctx := context.Background()
	if _, err := store.Update(ctx, "s", func(cart models.Cart) (models.Cart, error) {
		cart["7"] = 1
		return cart, nil
	}); err != nil {
		t.Fatalf("seed cart failed: %v", err)
	}

	boom := errors.New("boom")
	_, err := store.Update(ctx, "s", func(cart models.Cart) (models.Cart, error) {
		cart["7"] = 99
		delete(cart, "7")
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want mutator error, got %v", err)
	}

	cart, _ := store.Load(ctx, "s")
	if cart["7"] != 1 {
		t.Fatalf("cart should be unchanged after failed mutation, got %v", cart)
	}
}

func TestMemoryCartStoreIsolatesSessions(t *testing.T) {
	store := NewMemoryCartStore(time.Hour)
	ctx := context.Background()
	_, _ = store.Update(ctx, "a", func(cart models.Cart) (models.Cart, error) {
		cart["1"] = 3
		return cart, nil
	})

	other, err := store.Load(ctx, "b")
	if err != nil {
		t.Fatalf("load other session failed: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("other session should be empty, got %v", other)
	}
}

func TestMemoryCartStoreExpiresEntries(t *testing.T) {
	store := NewMemoryCartStore(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_, _ = store.Update(ctx, "s", func(cart models.Cart) (models.Cart, error) {
		cart["1"] = 1
		return cart, nil
	})
	now = now.Add(2 * time.Minute)

	cart, _ := store.Load(ctx, "s")
	if len(cart) != 0 {
		t.Fatalf("expired cart should be empty, got %v", cart)
	}
}

func TestMemoryCartStoreSweep(t *testing.T) {
	store := NewMemoryCartStore(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for _, sid := range []string{"a", "b"} {
		_, _ = store.Update(ctx, sid, func(cart models.Cart) (models.Cart, error) {
			cart["1"] = 1
			return cart, nil
		})
	}
	now = now.Add(30 * time.Second)
	_, _ = store.Update(ctx, "c", func(cart models.Cart) (models.Cart, error) {
		cart["2"] = 1
		return cart, nil
	})
	now = now.Add(45 * time.Second)

	if removed := store.Sweep(); removed != 2 {
		t.Fatalf("sweep want 2 removed got %d", removed)
	}
	if _, ok := store.entries["c"]; !ok {
		t.Fatalf("live cart should survive sweep")
	}
}

func TestMemoryCartStoreClearsEmptyCart(t *testing.T) {
	store := NewMemoryCartStore(time.Hour)
	ctx := context.Background()
	_, _ = store.Update(ctx, "s", func(cart models.Cart) (models.Cart, error) {
		cart["1"] = 1
		return cart, nil
	})
	_, _ = store.Update(ctx, "s", func(cart models.Cart) (models.Cart, error) {
		return models.Cart{}, nil
	})
	if _, ok := store.entries["s"]; ok {
		t.Fatalf("empty cart should not be kept in memory")
	}
}

func TestCartStoreRejectsEmptySession(t *testing.T) {
	store := NewMemoryCartStore(0)
	if _, err := store.Load(context.Background(), ""); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("want ErrSessionInvalid got %v", err)
	}
	if store.ttl != defaultCartTTL {
		t.Fatalf("zero ttl should fall back to default")
	}
}

func TestBuildKey(t *testing.T) {
	if got := buildKey("shop", cartKey("abc")); got != "shop:cart:abc" {
		t.Fatalf("unexpected key %s", got)
	}
	if got := buildKey("", "cart:abc"); got != "cart:abc" {
		t.Fatalf("unexpected key without prefix %s", got)
	}
}
