package service

import (
	"fmt"
	"testing"

	"github.com/minishop/internal/models"
	"github.com/minishop/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	products    *ProductService
	carts       *CartService
	orders      *OrderService
}

func setupServiceTest(t *testing.T) *serviceTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	return &serviceTestEnv{
		db:          db,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		products:    NewProductService(productRepo),
		carts:       NewCartService(productRepo),
		orders:      NewOrderService(orderRepo, productRepo),
	}
}

func (e *serviceTestEnv) createProduct(t *testing.T, name, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:  name,
		Price: models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
	}
	if err := e.productRepo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func uintPtr(v uint) *uint { return &v }

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
