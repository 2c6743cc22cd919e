package models

import (
	"github.com/minishop/internal/logger"

	"github.com/shopspring/decimal"
)

// DefaultProducts 首次启动写入的示例商品
func DefaultProducts() []Product {
	return []Product{
		{Name: "Chleb", Price: NewMoneyFromDecimal(decimal.RequireFromString("5.50"))},
		{Name: "Mleko", Price: NewMoneyFromDecimal(decimal.RequireFromString("3.20"))},
		{Name: "Ser", Price: NewMoneyFromDecimal(decimal.RequireFromString("12.99"))},
	}
}

// InitDefaultProducts 商品表为空时写入示例商品
func InitDefaultProducts() error {
	var count int64
	if err := DB.Model(&Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := DefaultProducts()
	if err := DB.Create(&products).Error; err != nil {
		return err
	}
	logger.Infow("default_products_created", "count", len(products))
	return nil
}
