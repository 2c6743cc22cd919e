package models

import (
	"sort"
	"strconv"
)

// Cart 会话购物车：商品ID（十进制字符串）-> 数量
// 不落库，随会话存储；数量始终 >= 1，缺失的 key 表示不在购物车中。
type Cart map[string]int

// CartKey 商品ID转换为购物车 key
func CartKey(productID uint) string {
	return strconv.FormatUint(uint64(productID), 10)
}

// Clone 复制购物车，避免修改调用方持有的数据
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Keys 按商品ID升序返回 key
func (c Cart) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.ParseUint(keys[i], 10, 64)
		b, errB := strconv.ParseUint(keys[j], 10, 64)
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})
	return keys
}

// ProductIDs 解析购物车中的商品ID，非法 key 会被忽略
func (c Cart) ProductIDs() []uint {
	ids := make([]uint, 0, len(c))
	for _, k := range c.Keys() {
		id, err := strconv.ParseUint(k, 10, 64)
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}
