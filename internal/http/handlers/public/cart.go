package public

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/minishop/internal/http/response"
	"github.com/minishop/internal/models"
	"github.com/minishop/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 购物车项请求
// 字段接受 JSON 数字或数字字符串，如 2、2.0、"2"。
type CartItemRequest struct {
	ProductID json.RawMessage `json:"product_id"`
	Qty       json.RawMessage `json:"qty"`
}

// cartIntField 解析后的整数字段
type cartIntField struct {
	value   int64
	present bool
	valid   bool
}

// parseCartIntField 解析整数字段
// 小数按向零取整，超出 int64 的值截断到边界。
func parseCartIntField(raw json.RawMessage) cartIntField {
	text := bytes.TrimSpace(raw)
	if len(text) == 0 || string(text) == "null" {
		return cartIntField{}
	}
	field := cartIntField{present: true}
	if text[0] == '"' {
		var s string
		if err := json.Unmarshal(text, &s); err != nil {
			return field
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil && !isRangeError(err) {
			return field
		}
		field.value, field.valid = n, true
		return field
	}
	if n, err := strconv.ParseInt(string(text), 10, 64); err == nil || isRangeError(err) {
		field.value, field.valid = n, true
		return field
	}
	f, err := strconv.ParseFloat(string(text), 64)
	if err != nil && !isRangeError(err) {
		return field
	}
	switch {
	case f >= math.MaxInt64:
		field.value = math.MaxInt64
	case f <= math.MinInt64:
		field.value = math.MinInt64
	default:
		field.value = int64(f)
	}
	field.valid = true
	return field
}

func isRangeError(err error) bool {
	return errors.Is(err, strconv.ErrRange)
}

// productID 商品ID，非正数不可能对应任何商品，统一视为 0
func (f cartIntField) productID() uint {
	if f.value < 1 {
		return 0
	}
	return uint(f.value)
}

// qty 数量，限制在 int 范围内
func (f cartIntField) qty() int {
	if f.value > math.MaxInt {
		return math.MaxInt
	}
	if f.value < math.MinInt {
		return math.MinInt
	}
	return int(f.value)
}

// AddToCartResponse 加入购物车响应
type AddToCartResponse struct {
	Message string      `json:"message"`
	Cart    models.Cart `json:"cart"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.CartStore.Load(c.Request.Context(), getSessionID(c))
	if err != nil {
		respondError(c, response.CodeInternal, "cart load failed", err)
		return
	}
	view, err := h.CartService.View(cart)
	if err != nil {
		respondError(c, response.CodeInternal, "cart view failed", err)
		return
	}
	response.Success(c, view)
}

// AddToCart 加入购物车
func (h *Handler) AddToCart(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgCartItemInvalid, nil)
		return
	}
	productField := parseCartIntField(req.ProductID)
	qtyField := parseCartIntField(req.Qty)
	if !productField.present || !qtyField.present {
		respondError(c, response.CodeBadRequest, msgCartItemInvalid, nil)
		return
	}
	if !productField.valid {
		respondError(c, response.CodeBadRequest, msgProductIDInvalid, nil)
		return
	}
	if !qtyField.valid {
		respondError(c, response.CodeBadRequest, msgCartQuantityInvalid, nil)
		return
	}

	productID, qty := productField.productID(), qtyField.qty()
	input := service.AddCartItemInput{ProductID: &productID, Qty: &qty}
	cart, err := h.CartStore.Update(c.Request.Context(), getSessionID(c), func(cart models.Cart) (models.Cart, error) {
		return h.CartService.Add(cart, input)
	})
	if err != nil {
		respondWithMappedError(c, err, cartItemErrorRules, response.CodeInternal, "cart add failed")
		return
	}
	response.Success(c, AddToCartResponse{Message: msgAddedToCart, Cart: cart})
}

// UpdateCartItem 修改购物车商品数量
// 请求体无法解析时按空请求处理，数量缺失或无法解析时视为 0。
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = CartItemRequest{}
	}
	productField := parseCartIntField(req.ProductID)
	qtyField := parseCartIntField(req.Qty)

	input := service.UpdateCartItemInput{}
	if qtyField.valid {
		input.Qty = qtyField.qty()
	}
	if input.Qty >= 1 && productField.present && !productField.valid {
		respondError(c, response.CodeBadRequest, msgProductIDInvalid, nil)
		return
	}
	if productField.valid {
		productID := productField.productID()
		input.ProductID = &productID
	}
	_, err := h.CartStore.Update(c.Request.Context(), getSessionID(c), func(cart models.Cart) (models.Cart, error) {
		return h.CartService.Update(cart, input)
	})
	if err != nil {
		respondWithMappedError(c, err, cartItemErrorRules, response.CodeInternal, "cart update failed")
		return
	}
	response.Message(c, msgUpdated)
}

// DeleteCartItem 从购物车移除商品
func (h *Handler) DeleteCartItem(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, msgProductIDInvalid, nil)
		return
	}

	_, err = h.CartStore.Update(c.Request.Context(), getSessionID(c), func(cart models.Cart) (models.Cart, error) {
		return h.CartService.Remove(cart, uint(productID))
	})
	if err != nil {
		respondWithMappedError(c, err, cartItemErrorRules, response.CodeInternal, "cart delete failed")
		return
	}
	response.Message(c, msgDeleted)
}
