package service

import (
	"fmt"
	"time"

	"github.com/minishop/internal/logger"
	"github.com/minishop/internal/models"
	"github.com/minishop/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单服务（结算与订单查询）
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// Checkout 将购物车结算为订单
// 订单与订单项在同一事务中写入；商品单价在此刻快照。
// 购物车中已删除的商品被跳过，全部被跳过时仍创建金额为 0 的空订单。
// 清空购物车由调用方在成功后完成。
func (s *OrderService) Checkout(cart models.Cart) (*models.Order, error) {
	if len(cart) == 0 {
		return nil, ErrCartEmpty
	}

	var order *models.Order
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		lines, total, err := resolveCartLines(s.productRepo.WithTx(tx), cart)
		if err != nil {
			return fmt.Errorf("resolve cart products: %w", err)
		}

		if !models.NewMoneyFromDecimal(total).Storable() {
			return ErrOrderTotalTooLarge
		}

		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, models.OrderItem{
				ProductID: line.product.ID,
				Qty:       line.qty,
				Price:     line.product.Price,
			})
		}

		order = &models.Order{
			CreatedAt:  time.Now(),
			TotalPrice: models.NewMoneyFromDecimal(total),
		}
		if err := s.orderRepo.WithTx(tx).Create(order, items); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(order.Items) == 0 {
		logger.Warnw("checkout_without_valid_items",
			"order_id", order.ID,
			"cart_size", len(cart),
		)
	}
	logger.Infow("checkout_created",
		"order_id", order.ID,
		"items", len(order.Items),
		"total", order.TotalPrice.String(),
	)
	return order, nil
}
