package service

import (
	"time"

	"github.com/minishop/internal/models"
)

// OrderItemView 订单项视图
type OrderItemView struct {
	ProductName string       `json:"product_name"`
	Qty         int          `json:"qty"`
	Price       models.Money `json:"price"`
	LineTotal   models.Money `json:"line_total"`
}

// OrderView 订单详情视图
type OrderView struct {
	ID         uint            `json:"id"`
	CreatedAt  time.Time       `json:"created_at"`
	TotalPrice models.Money    `json:"total_price"`
	Items      []OrderItemView `json:"items"`
}

// GetOrder 获取订单详情
func (s *OrderService) GetOrder(orderID uint) (*OrderView, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return buildOrderView(order), nil
}

// buildOrderView 组装订单视图，商品被删除时名称为空
func buildOrderView(order *models.Order) *OrderView {
	view := &OrderView{
		ID:         order.ID,
		CreatedAt:  order.CreatedAt,
		TotalPrice: order.TotalPrice,
		Items:      make([]OrderItemView, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		view.Items = append(view.Items, OrderItemView{
			ProductName: name,
			Qty:         item.Qty,
			Price:       item.Price,
			LineTotal:   item.LineTotal(),
		})
	}
	return view
}
