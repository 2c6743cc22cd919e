package public

import (
	"fmt"

	"github.com/minishop/internal/http/response"
	"github.com/minishop/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateProductRequest 创建商品请求
// 字段使用指针以区分缺失与零值。
type CreateProductRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	products, err := h.ProductService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "product list failed", err)
		return
	}
	response.Success(c, products)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgProductInvalid, nil)
		return
	}

	input := service.CreateProductInput{Price: req.Price}
	if req.Name != nil {
		input.Name = *req.Name
	}
	product, err := h.ProductService.Create(input)
	if err != nil {
		respondWithMappedError(c, err, productCreateErrorRules, response.CodeInternal, "product create failed")
		return
	}
	response.Created(c, fmt.Sprintf("/api/products/%d", product.ID), product)
}
