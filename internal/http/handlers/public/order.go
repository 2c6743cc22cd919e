package public

import (
	"fmt"
	"strconv"

	"github.com/minishop/internal/http/response"
	"github.com/minishop/internal/models"

	"github.com/gin-gonic/gin"
)

// CheckoutResponse 结算响应
type CheckoutResponse struct {
	OrderID uint         `json:"order_id"`
	Total   models.Money `json:"total"`
}

// Checkout 结算购物车
// 订单提交后清空会话购物车；订单已落库但清空失败时仍返回成功。
func (h *Handler) Checkout(c *gin.Context) {
	var order *models.Order
	_, err := h.CartStore.Update(c.Request.Context(), getSessionID(c), func(cart models.Cart) (models.Cart, error) {
		created, err := h.OrderService.Checkout(cart)
		if err != nil {
			return nil, err
		}
		order = created
		return models.Cart{}, nil
	})
	if err != nil && order == nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "checkout failed")
		return
	}
	if err != nil {
		requestLog(c).Errorw("checkout_cart_clear_failed",
			"order_id", order.ID,
			"error", err,
		)
	}
	recordCheckout(order)
	response.Created(c, fmt.Sprintf("/api/orders/%d", order.ID), CheckoutResponse{OrderID: order.ID, Total: order.TotalPrice})
}

// GetOrder 获取订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, msgOrderIDInvalid, nil)
		return
	}
	view, err := h.OrderService.GetOrder(uint(orderID))
	if err != nil {
		respondWithMappedError(c, err, orderQueryErrorRules, response.CodeInternal, "order fetch failed")
		return
	}
	response.Success(c, view)
}
