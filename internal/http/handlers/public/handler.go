package public

import "github.com/minishop/internal/provider"

// Handler 商店公开接口处理器
// 说明：商品、购物车、结算与订单查询均挂在该处理器上。
type Handler struct {
	*provider.Container
}

// New 创建公开接口处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
