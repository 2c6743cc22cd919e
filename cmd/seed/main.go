package main

import (
	"flag"

	"github.com/minishop/internal/config"
	"github.com/minishop/internal/logger"
	"github.com/minishop/internal/models"
)

func main() {
	force := flag.Bool("force", false, "商品表非空时也追加示例商品")
	flag.Parse()

	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if !*force {
		if err := models.InitDefaultProducts(); err != nil {
			stdLog.Fatalf("Failed to seed products: %v", err)
		}
		stdLog.Printf("Seed finished")
		return
	}

	products := models.DefaultProducts()
	for i := range products {
		if err := models.DB.Create(&products[i]).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", products[i].Name, err)
			continue
		}
		stdLog.Printf("Created product: %s (id=%d, price=%s)", products[i].Name, products[i].ID, products[i].Price.String())
	}
}
