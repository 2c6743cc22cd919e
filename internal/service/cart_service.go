package service

import (
	"math"

	"github.com/minishop/internal/models"
	"github.com/minishop/internal/repository"

	"github.com/shopspring/decimal"
)

// CartLine 购物车行（用于响应）
type CartLine struct {
	ProductID uint         `json:"product_id"`
	Name      string       `json:"name"`
	Price     models.Money `json:"price"`
	Qty       int          `json:"qty"`
	LineTotal models.Money `json:"line_total"`
}

// CartView 购物车视图
type CartView struct {
	Items []CartLine   `json:"items"`
	Total models.Money `json:"total"`
}

// AddCartItemInput 加入购物车输入，nil 表示字段缺失
type AddCartItemInput struct {
	ProductID *uint
	Qty       *int
}

// UpdateCartItemInput 修改购物车数量输入
// ProductID 为 nil 时视为不在购物车中；Qty 缺失时按 0 处理。
type UpdateCartItemInput struct {
	ProductID *uint
	Qty       int
}

// CartService 购物车服务
// 购物车由调用方从会话中取出并传入，服务本身不持有会话状态。
type CartService struct {
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(productRepo repository.ProductRepository) *CartService {
	return &CartService{productRepo: productRepo}
}

// View 计算购物车明细与总额，已删除的商品直接跳过
func (s *CartService) View(cart models.Cart) (*CartView, error) {
	lines, total, err := resolveCartLines(s.productRepo, cart)
	if err != nil {
		return nil, err
	}
	view := &CartView{
		Items: make([]CartLine, 0, len(lines)),
		Total: models.NewMoneyFromDecimal(total),
	}
	for _, line := range lines {
		view.Items = append(view.Items, CartLine{
			ProductID: line.product.ID,
			Name:      line.product.Name,
			Price:     line.product.Price,
			Qty:       line.qty,
			LineTotal: models.NewMoneyFromDecimal(line.lineTotal),
		})
	}
	return view, nil
}

// Add 加入购物车，已存在的商品数量累加
// 累加结果超出 int 范围时拒绝，购物车保持不变。
func (s *CartService) Add(cart models.Cart, input AddCartItemInput) (models.Cart, error) {
	if input.ProductID == nil || input.Qty == nil {
		return nil, ErrCartItemInvalid
	}
	if *input.Qty < 1 {
		return nil, ErrCartQuantityInvalid
	}
	if *input.ProductID == 0 {
		return nil, ErrProductNotFound
	}
	product, err := s.productRepo.GetByID(*input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	key := models.CartKey(product.ID)
	if cart[key] > math.MaxInt-*input.Qty {
		return nil, ErrCartQuantityTooBig
	}
	next := cart.Clone()
	next[key] += *input.Qty
	return next, nil
}

// Update 覆盖购物车中商品的数量
// 只校验商品是否在购物车中，不再校验商品是否仍存在。
func (s *CartService) Update(cart models.Cart, input UpdateCartItemInput) (models.Cart, error) {
	if input.Qty < 1 {
		return nil, ErrCartQuantityInvalid
	}
	if input.ProductID == nil {
		return nil, ErrCartItemNotFound
	}
	key := models.CartKey(*input.ProductID)
	if _, ok := cart[key]; !ok {
		return nil, ErrCartItemNotFound
	}

	next := cart.Clone()
	next[key] = input.Qty
	return next, nil
}

// Remove 从购物车移除商品
func (s *CartService) Remove(cart models.Cart, productID uint) (models.Cart, error) {
	key := models.CartKey(productID)
	if _, ok := cart[key]; !ok {
		return nil, ErrCartItemNotFound
	}
	next := cart.Clone()
	delete(next, key)
	return next, nil
}

type resolvedCartLine struct {
	product   models.Product
	qty       int
	lineTotal decimal.Decimal
}

// resolveCartLines 批量查询购物车中的商品并计算小计
// 结果按商品ID升序；找不到的商品与非法 key 被忽略。
func resolveCartLines(productRepo repository.ProductRepository, cart models.Cart) ([]resolvedCartLine, decimal.Decimal, error) {
	total := decimal.Zero
	ids := cart.ProductIDs()
	if len(ids) == 0 {
		return nil, total, nil
	}
	products, err := productRepo.ListByIDs(ids)
	if err != nil {
		return nil, total, err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	lines := make([]resolvedCartLine, 0, len(ids))
	for _, id := range ids {
		product, ok := byID[id]
		if !ok {
			continue
		}
		qty := cart[models.CartKey(id)]
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(qty)))
		total = total.Add(lineTotal)
		lines = append(lines, resolvedCartLine{product: product, qty: qty, lineTotal: lineTotal})
	}
	return lines, total, nil
}
