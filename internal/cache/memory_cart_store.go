package cache

import (
	"context"
	"sync"
	"time"

	"github.com/minishop/internal/models"
)

const memorySweepEvery = 256

type memoryCartEntry struct {
	cart      models.Cart
	expiresAt time.Time
}

type memorySessionLock struct {
	sem  chan struct{}
	refs int
}

// MemoryCartStore 进程内购物车存储（未启用 Redis 时使用）
type MemoryCartStore struct {
	mu       sync.Mutex
	entries  map[string]memoryCartEntry
	locks    map[string]*memorySessionLock
	ttl      time.Duration
	lockWait time.Duration
	writes   int
	now      func() time.Time
}

// NewMemoryCartStore 创建进程内购物车存储
func NewMemoryCartStore(ttl time.Duration) *MemoryCartStore {
	return &MemoryCartStore{
		entries:  make(map[string]memoryCartEntry),
		locks:    make(map[string]*memorySessionLock),
		ttl:      normalizeCartTTL(ttl),
		lockWait: defaultLockWait,
		now:      time.Now,
	}
}

// Load 读取会话购物车，不存在或已过期时返回空购物车
func (s *MemoryCartStore) Load(ctx context.Context, sessionID string) (models.Cart, error) {
	if sessionID == "" {
		return nil, ErrSessionInvalid
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(sessionID).Clone(), nil
}

// Update 在会话锁内读取、变更并保存购物车
// 等锁超过 lockWait 返回 ErrCartBusy，ctx 结束时返回 ctx.Err()。
func (s *MemoryCartStore) Update(ctx context.Context, sessionID string, fn CartMutator) (models.Cart, error) {
	if sessionID == "" {
		return nil, ErrSessionInvalid
	}
	unlock, err := s.lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	s.mu.Lock()
	current := s.getLocked(sessionID).Clone()
	s.mu.Unlock()

	next, err := fn(current)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(next) == 0 {
		delete(s.entries, sessionID)
	} else {
		s.entries[sessionID] = memoryCartEntry{cart: next.Clone(), expiresAt: s.now().Add(s.ttl)}
	}
	s.writes++
	if s.writes%memorySweepEvery == 0 {
		s.sweepLocked()
	}
	return next.Clone(), nil
}

func (s *MemoryCartStore) getLocked(sessionID string) models.Cart {
	entry, ok := s.entries[sessionID]
	if !ok {
		return models.Cart{}
	}
	if !entry.expiresAt.After(s.now()) {
		delete(s.entries, sessionID)
		return models.Cart{}
	}
	return entry.cart
}

// Sweep 清理已过期的会话购物车，返回清理数量
func (s *MemoryCartStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

func (s *MemoryCartStore) sweepLocked() int {
	now := s.now()
	removed := 0
	for id, entry := range s.entries {
		if !entry.expiresAt.After(now) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

func (s *MemoryCartStore) lock(ctx context.Context, sessionID string) (func(), error) {
	s.mu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &memorySessionLock{sem: make(chan struct{}, 1)}
		s.locks[sessionID] = l
	}
	l.refs++
	s.mu.Unlock()

	timer := time.NewTimer(s.lockWait)
	defer timer.Stop()
	select {
	case l.sem <- struct{}{}:
		return func() {
			<-l.sem
			s.dropLock(sessionID, l)
		}, nil
	case <-ctx.Done():
		s.dropLock(sessionID, l)
		return nil, ctx.Err()
	case <-timer.C:
		s.dropLock(sessionID, l)
		return nil, ErrCartBusy
	}
}

func (s *MemoryCartStore) dropLock(sessionID string, l *memorySessionLock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, sessionID)
	}
}
