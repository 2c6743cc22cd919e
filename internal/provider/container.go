package provider

import (
	"time"

	"github.com/minishop/internal/cache"
	"github.com/minishop/internal/config"
	"github.com/minishop/internal/logger"
	"github.com/minishop/internal/models"
	"github.com/minishop/internal/repository"
	"github.com/minishop/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Session
	CartStore       cache.CartStore
	MemoryCartStore *cache.MemoryCartStore // 未启用 Redis 时非空，供清理任务使用

	// Repositories
	ProductRepo repository.ProductRepository
	OrderRepo   repository.OrderRepository

	// Services
	ProductService *service.ProductService
	CartService    *service.CartService
	OrderService   *service.OrderService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	ttl := time.Duration(cfg.Session.TTLSeconds) * time.Second
	if cache.Enabled() {
		logger.Infow("provider_cart_store_selected", "store", "redis")
		return NewContainerWith(cfg, models.DB, cache.NewRedisCartStore(cache.Client(), cache.Prefix(), ttl))
	}
	logger.Infow("provider_cart_store_selected", "store", "memory")
	return NewContainerWith(cfg, models.DB, cache.NewMemoryCartStore(ttl))
}

// NewContainerWith 使用指定数据库与购物车存储初始化容器
func NewContainerWith(cfg *config.Config, db *gorm.DB, store cache.CartStore) *Container {
	c := &Container{
		Config:    cfg,
		CartStore: store,
	}
	if memStore, ok := store.(*cache.MemoryCartStore); ok {
		c.MemoryCartStore = memStore
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.ProductRepo = repository.NewProductRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() {
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo)
}
