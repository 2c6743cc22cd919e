package router

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/minishop/internal/cache"
	"github.com/minishop/internal/config"
	publichandlers "github.com/minishop/internal/http/handlers/public"
	"github.com/minishop/internal/http/response"
	"github.com/minishop/internal/logger"
	"github.com/minishop/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "shop"
	}
	writeRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:write", redisPrefix),
		WindowSeconds: cfg.Security.WriteRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.WriteRateLimit.MaxRequests,
	}
	writeLimit := RateLimitMiddleware(cache.Client(), writeRule, KeyBySession)

	// 中间件
	r.Use(SecurityHeadersMiddleware())
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	if cfg.Metrics.Enabled {
		r.Use(MetricsMiddleware())
	}
	r.Use(CORSMiddleware(cfg.CORS))

	// 首页与静态资源
	staticDir := strings.TrimSpace(cfg.Server.StaticDir)
	if staticDir == "" {
		staticDir = "./static"
	}
	r.StaticFile("/", filepath.Join(staticDir, "index.html"))
	r.Static("/static", staticDir)

	r.GET("/healthz", publicHandler.Health)
	if cfg.Metrics.Enabled {
		metricsPath := strings.TrimSpace(cfg.Metrics.Path)
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		r.GET(metricsPath, gin.WrapH(promhttp.Handler()))
	}

	api := r.Group("/api")
	api.Use(SessionMiddleware(cfg.Session))
	{
		api.GET("/products", publicHandler.GetProducts)
		api.POST("/products", writeLimit, publicHandler.CreateProduct)

		api.GET("/cart", publicHandler.GetCart)
		api.POST("/cart/add", writeLimit, publicHandler.AddToCart)
		api.PATCH("/cart/item", writeLimit, publicHandler.UpdateCartItem)
		api.DELETE("/cart/item/:product_id", writeLimit, publicHandler.DeleteCartItem)

		api.POST("/checkout", writeLimit, publicHandler.Checkout)
		api.GET("/orders/:id", publicHandler.GetOrder)
	}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Not found")
	})

	return r
}
