package service

import (
	"strings"

	"github.com/minishop/internal/models"
	"github.com/minishop/internal/repository"
)

// ProductService 商品业务服务
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// CreateProductInput 创建商品输入
// Price 为 nil 表示请求中缺少价格字段。
type CreateProductInput struct {
	Name  string
	Price *float64
}

// List 获取全部商品
func (s *ProductService) List() ([]models.Product, error) {
	return s.repo.List()
}

// Create 创建商品
func (s *ProductService) Create(input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Price == nil {
		return nil, ErrProductInvalid
	}
	if *input.Price < 0 {
		return nil, ErrProductPriceInvalid
	}

	price := models.NewMoneyFromFloat(*input.Price)
	if !price.Storable() {
		return nil, ErrProductPriceRange
	}

	product := models.Product{
		Name:  name,
		Price: price,
	}
	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}
	return &product, nil
}
