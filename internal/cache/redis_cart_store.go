package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/minishop/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// 仅删除自己持有的锁
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisCartStore 基于 Redis 的会话购物车存储
// 购物车以 JSON 保存，同一会话的修改通过 SET NX 锁串行化。
type RedisCartStore struct {
	rdb          *redis.Client
	prefix       string
	ttl          time.Duration
	lockTTL      time.Duration
	lockWait     time.Duration
	lockInterval time.Duration
}

// NewRedisCartStore 创建 Redis 购物车存储
func NewRedisCartStore(rdb *redis.Client, prefix string, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{
		rdb:          rdb,
		prefix:       prefix,
		ttl:          normalizeCartTTL(ttl),
		lockTTL:      defaultLockTTL,
		lockWait:     defaultLockWait,
		lockInterval: defaultLockInterval,
	}
}

// Load 读取会话购物车
func (s *RedisCartStore) Load(ctx context.Context, sessionID string) (models.Cart, error) {
	if sessionID == "" {
		return nil, ErrSessionInvalid
	}
	return s.get(ctx, sessionID)
}

// Update 加锁后读取、变更并保存购物车
func (s *RedisCartStore) Update(ctx context.Context, sessionID string, fn CartMutator) (models.Cart, error) {
	if sessionID == "" {
		return nil, ErrSessionInvalid
	}
	token, err := s.acquire(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer s.release(sessionID, token)

	current, err := s.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	next, err := fn(current)
	if err != nil {
		return nil, err
	}

	key := buildKey(s.prefix, cartKey(sessionID))
	if len(next) == 0 {
		if err := s.rdb.Del(ctx, key).Err(); err != nil {
			return nil, err
		}
		return models.Cart{}, nil
	}
	payload, err := json.Marshal(next)
	if err != nil {
		return nil, err
	}
	if err := s.rdb.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *RedisCartStore) get(ctx context.Context, sessionID string) (models.Cart, error) {
	val, err := s.rdb.Get(ctx, buildKey(s.prefix, cartKey(sessionID))).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Cart{}, nil
	}
	if err != nil {
		return nil, err
	}
	cart := models.Cart{}
	if err := json.Unmarshal(val, &cart); err != nil {
		return nil, fmt.Errorf("decode cart session: %w", err)
	}
	return cart, nil
}

func (s *RedisCartStore) acquire(ctx context.Context, sessionID string) (string, error) {
	key := buildKey(s.prefix, cartLockKey(sessionID))
	token := uuid.NewString()
	deadline := time.Now().Add(s.lockWait)
	for {
		ok, err := s.rdb.SetNX(ctx, key, token, s.lockTTL).Result()
		if err != nil {
			return "", err
		}
		if ok {
			return token, nil
		}
		if time.Now().After(deadline) {
			return "", ErrCartBusy
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.lockInterval):
		}
	}
}

func (s *RedisCartStore) release(sessionID, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	key := buildKey(s.prefix, cartLockKey(sessionID))
	_ = releaseLockScript.Run(ctx, s.rdb, []string{key}, token).Err()
}

var _ CartStore = (*RedisCartStore)(nil)
var _ CartStore = (*MemoryCartStore)(nil)
