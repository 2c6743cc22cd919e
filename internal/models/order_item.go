package models

// OrderItem 订单项表
type OrderItem struct {
	ID        uint  `gorm:"primarykey" json:"id"`                                // 主键
	OrderID   uint  `gorm:"index;not null" json:"order_id"`                      // 订单ID
	ProductID uint  `gorm:"index;not null" json:"product_id"`                    // 商品ID
	Qty       int   `gorm:"not null" json:"qty"`                                 // 数量
	Price     Money `gorm:"type:decimal(38,10);not null;default:0" json:"price"` // 下单时的单价快照

	Product *Product `gorm:"foreignKey:ProductID" json:"-"` // 关联商品（仅用于外键约束）
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal 小计 = 数量 * 单价快照
func (i OrderItem) LineTotal() Money {
	return NewMoneyFromDecimal(i.Price.Mul(decimalFromInt(i.Qty)))
}
