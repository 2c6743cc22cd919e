package cache

import (
	"context"
	"errors"
	"time"

	"github.com/minishop/internal/models"
)

// ErrCartBusy 同一会话的购物车正被其他请求修改且等待超时
var ErrCartBusy = errors.New("cart session is busy")

// ErrSessionInvalid 会话标识为空
var ErrSessionInvalid = errors.New("session id is empty")

// CartMutator 在会话锁内执行的购物车变更函数
// 入参为购物车副本；返回错误时不保存任何修改。
type CartMutator func(cart models.Cart) (models.Cart, error)

// CartStore 会话购物车存储
// 同一会话的 Update 调用串行执行，避免读改写丢失更新。
type CartStore interface {
	Load(ctx context.Context, sessionID string) (models.Cart, error)
	Update(ctx context.Context, sessionID string, fn CartMutator) (models.Cart, error)
}

const (
	defaultCartTTL      = 31 * 24 * time.Hour
	defaultLockTTL      = 10 * time.Second
	defaultLockWait     = 3 * time.Second
	defaultLockInterval = 15 * time.Millisecond
)

func normalizeCartTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return defaultCartTTL
	}
	return ttl
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

func cartLockKey(sessionID string) string {
	return "cart_lock:" + sessionID
}
