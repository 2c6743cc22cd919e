package models

import (
	"fmt"
	"testing"
)

func TestInitDefaultProductsSeedsOnce(t *testing.T) {
	prev := DB
	t.Cleanup(func() {
		DB = prev
	})
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	if err := InitDB("sqlite", dsn, DBPoolConfig{MaxOpenConns: 1, MaxIdleConns: 1}); err != nil {
		t.Fatalf("init db failed: %v", err)
	}
	if err := AutoMigrate(); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := InitDefaultProducts(); err != nil {
			t.Fatalf("seed round %d failed: %v", i, err)
		}
	}

	var products []Product
	if err := DB.Order("id ASC").Find(&products).Error; err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("want 3 seeded products got %d", len(products))
	}
	if products[0].Name != "Chleb" || products[0].Price.String() != "5.50" {
		t.Fatalf("unexpected first product: %+v", products[0])
	}
}
