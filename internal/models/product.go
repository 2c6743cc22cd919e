package models

// Product 商品表
type Product struct {
	ID    uint   `gorm:"primarykey" json:"id"`                                // 主键
	Name  string `gorm:"type:varchar(100);not null" json:"name"`              // 商品名称
	Price Money  `gorm:"type:decimal(38,10);not null;default:0" json:"price"` // 价格
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
