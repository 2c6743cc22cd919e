package public

import (
	"errors"

	"github.com/minishop/internal/cache"
	"github.com/minishop/internal/http/response"
	"github.com/minishop/internal/service"

	"github.com/gin-gonic/gin"
)

// 响应消息
const (
	msgProductInvalid      = "Missing name or price"
	msgProductPriceInvalid = "Price must be >= 0"
	msgProductPriceRange   = "Price must have at most 10 decimal places and 28 integer digits"
	msgProductNotFound     = "Product not found"
	msgCartItemInvalid     = "Missing product_id or qty"
	msgCartQuantityInvalid = "Qty must be >= 1"
	msgCartQuantityTooBig  = "Qty too large"
	msgCartItemNotFound    = "Item not in cart"
	msgCartEmpty           = "Cart is empty"
	msgCartBusy            = "Cart is busy, please retry"
	msgOrderNotFound       = "Order not found"
	msgOrderTotalTooLarge  = "Order total too large"
	msgProductIDInvalid    = "Invalid product_id"
	msgOrderIDInvalid      = "Invalid order id"

	msgAddedToCart = "Added to cart"
	msgUpdated     = "Updated"
	msgDeleted     = "Deleted"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var productCreateErrorRules = []mappedHandlerError{
	{target: service.ErrProductInvalid, code: response.CodeBadRequest, msg: msgProductInvalid},
	{target: service.ErrProductPriceInvalid, code: response.CodeBadRequest, msg: msgProductPriceInvalid},
	{target: service.ErrProductPriceRange, code: response.CodeBadRequest, msg: msgProductPriceRange},
}

var cartSessionErrorRules = []mappedHandlerError{
	{target: cache.ErrCartBusy, code: response.CodeConflict, msg: msgCartBusy},
}

var cartItemErrorRules = concatMappedHandlerErrors([]mappedHandlerError{
	{target: service.ErrCartItemInvalid, code: response.CodeBadRequest, msg: msgCartItemInvalid},
	{target: service.ErrCartQuantityInvalid, code: response.CodeBadRequest, msg: msgCartQuantityInvalid},
	{target: service.ErrCartQuantityTooBig, code: response.CodeBadRequest, msg: msgCartQuantityTooBig},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: msgProductNotFound},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, msg: msgCartItemNotFound},
}, cartSessionErrorRules)

var checkoutErrorRules = concatMappedHandlerErrors([]mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: msgCartEmpty},
	{target: service.ErrOrderTotalTooLarge, code: response.CodeBadRequest, msg: msgOrderTotalTooLarge},
}, cartSessionErrorRules)

var orderQueryErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: msgOrderNotFound},
}
