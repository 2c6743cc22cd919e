package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// MoneyScale 金额存储的小数位数
const MoneyScale = 10

// MoneyIntegerDigits 金额存储的整数位数上限
const MoneyIntegerDigits = 28

var moneyLimit = decimal.New(1, MoneyIntegerDigits)

// Money 统一金额类型
// 按原值保存，展示时至少保留 2 位小数。
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal 从 decimal 创建金额
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount}
}

// NewMoneyFromFloat 从浮点数创建金额
func NewMoneyFromFloat(amount float64) Money {
	return NewMoneyFromDecimal(decimal.NewFromFloat(amount))
}

// Storable 金额能否按 decimal(38,10) 无损保存
func (m Money) Storable() bool {
	if !m.Decimal.Equal(m.Decimal.Round(MoneyScale)) {
		return false
	}
	return m.Decimal.Abs().LessThan(moneyLimit)
}

func decimalFromInt(v int) decimal.Decimal {
	return decimal.NewFromInt(int64(v))
}

// MarshalJSON 输出 JSON 数字，分以内的金额固定 2 位小数
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON 解析金额（字符串或数字）
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		m.Decimal = d
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	m.Decimal = decimal.NewFromFloat(f)
	return nil
}

// Value 用于数据库写入
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Value()
}

// Scan 用于数据库读取
func (m *Money) Scan(value interface{}) error {
	return m.Decimal.Scan(value)
}

// String 返回金额文本，如 14.20、0.125
func (m Money) String() string {
	if m.Decimal.Equal(m.Decimal.Round(2)) {
		return m.Decimal.StringFixed(2)
	}
	return m.Decimal.String()
}
