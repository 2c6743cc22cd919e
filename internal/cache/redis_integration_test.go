//go:build integration
// +build integration

package cache

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/minishop/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// setupRedisIntegrationStore 初始化 Redis 集成测试购物车存储。
func setupRedisIntegrationStore(t *testing.T) (*RedisCartStore, *redis.Client) {
	t.Helper()

	addr := strings.TrimSpace(os.Getenv("TEST_REDIS_ADDR"))
	if addr == "" {
		t.Skip("skip redis integration test: TEST_REDIS_ADDR is empty")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Fatalf("ping redis failed: %v", err)
	}

	prefix := "shop_test_" + uuid.NewString()
	t.Cleanup(func() {
		keys, err := rdb.Keys(ctx, prefix+":*").Result()
		if err == nil && len(keys) > 0 {
			_ = rdb.Del(ctx, keys...).Err()
		}
		_ = rdb.Close()
	})
	return NewRedisCartStore(rdb, prefix, time.Hour), rdb
}

func TestRedisCartStoreSerializesSameSessionUpdates(t *testing.T) {
	store, _ := setupRedisIntegrationStore(t)
	store.lockWait = 10 * time.Second
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
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
	if cart["1"] != 60 {
		t.Fatalf("qty want 60 got %d", cart["1"])
	}
}

func TestRedisCartStoreBusyAfterLockWait(t *testing.T) {
	store, rdb := setupRedisIntegrationStore(t)
	store.lockWait = 100 * time.Millisecond
	ctx := context.Background()
	lockKey := buildKey(store.prefix, cartLockKey("s"))
	if err := rdb.Set(ctx, lockKey, "other-holder", time.Minute).Err(); err != nil {
		t.Fatalf("seed lock failed: %v", err)
	}

	_, err := store.Update(ctx, "s", func(cart models.Cart) (models.Cart, error) {
		t.Errorf("mutator must not run while the session is locked")
		return cart, nil
	})
	if !errors.Is(err, ErrCartBusy) {
		t.Fatalf("want ErrCartBusy got %v", err)
	}
	if got, _ := rdb.Get(ctx, lockKey).Result(); got != "other-holder" {
		t.Fatalf("foreign lock must survive, got %q", got)
	}
}

func TestRedisCartStoreReleaseKeepsForeignToken(t *testing.T) {
	store, rdb := setupRedisIntegrationStore(t)
	ctx := context.Background()
	lockKey := buildKey(store.prefix, cartLockKey("s"))

	token, err := store.acquire(ctx, "s")
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	// 锁已过期并被其他请求重新获取
	if err := rdb.Set(ctx, lockKey, "next-holder", time.Minute).Err(); err != nil {
		t.Fatalf("overwrite lock failed: %v", err)
	}
	store.release("s", token)
	if got, _ := rdb.Get(ctx, lockKey).Result(); got != "next-holder" {
		t.Fatalf("release must not delete another holder's lock, got %q", got)
	}

	if err := rdb.Set(ctx, lockKey, token, time.Minute).Err(); err != nil {
		t.Fatalf("restore lock failed: %v", err)
	}
	store.release("s", token)
	if n, _ := rdb.Exists(ctx, lockKey).Result(); n != 0 {
		t.Fatalf("own lock should be released")
	}
}

func TestRedisCartStoreStorageLifecycle(t *testing.T) {
	store, rdb := setupRedisIntegrationStore(t)
	ctx := context.Background()
	cartKeyName := buildKey(store.prefix, cartKey("s"))

	if _, err := store.Update(ctx, "s", func(cart models.Cart) (models.Cart, error) {
		cart["3"] = 2
		return cart, nil
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	ttl, err := rdb.TTL(ctx, cartKeyName).Result()
	if err != nil {
		t.Fatalf("ttl failed: %v", err)
	}
	if ttl <= 0 || ttl > time.Hour {
		t.Fatalf("cart ttl should be refreshed to 1h, got %v", ttl)
	}

	if _, err := store.Update(ctx, "s", func(cart models.Cart) (models.Cart, error) {
		return models.Cart{}, nil
	}); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if n, _ := rdb.Exists(ctx, cartKeyName).Result(); n != 0 {
		t.Fatalf("empty cart should delete the key")
	}

	if err := rdb.Set(ctx, cartKeyName, "not-json", time.Minute).Err(); err != nil {
		t.Fatalf("seed corrupt cart failed: %v", err)
	}
	if _, err := store.Load(ctx, "s"); err == nil {
		t.Fatalf("corrupt cart payload should fail to decode")
	}
}
