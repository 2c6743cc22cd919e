package models

import "time"

// Order 订单表
// 订单创建后不再修改，作为历史记录保存。
type Order struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                      // 主键
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                                   // 创建时间
	TotalPrice Money     `gorm:"type:decimal(38,10);not null;default:0" json:"total_price"` // 订单总额

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
