package service

import "errors"

// 商品相关错误
var (
	ErrProductInvalid      = errors.New("product name or price missing")
	ErrProductPriceInvalid = errors.New("product price must be >= 0")
	ErrProductPriceRange   = errors.New("product price exceeds supported precision")
	ErrProductNotFound     = errors.New("product not found")
)

// 购物车相关错误
var (
	ErrCartItemInvalid     = errors.New("cart item product_id or qty missing")
	ErrCartQuantityInvalid = errors.New("cart item qty must be >= 1")
	ErrCartQuantityTooBig  = errors.New("cart item qty overflows")
	ErrCartItemNotFound    = errors.New("item not in cart")
	ErrCartEmpty           = errors.New("cart is empty")
)

// 订单相关错误
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderTotalTooLarge = errors.New("order total exceeds supported range")
)
