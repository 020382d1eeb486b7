// Package bootstrap 收拢 cmd/* 共用的启动步骤
package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-gorm-shop/internal/core/auth"
	"go-gin-gorm-shop/internal/core/cache"
	"go-gin-gorm-shop/internal/core/config"
	"go-gin-gorm-shop/internal/core/database"
	"go-gin-gorm-shop/internal/core/logger"
	"go-gin-gorm-shop/internal/repo"
)

func Logger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.File.Enable {
		return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
			Filename:   cfg.Log.File.Filename,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		})
	}
	return logger.New(cfg.Log.Level, cfg.Log.JSON)
}

// MustOpenDB 失败直接 Fatal；AutoMigrate 打开时顺带迁移
func MustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	}, l)
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := repo.Migrate(db); err != nil {
			l.Fatal("automigrate failed", zap.Error(err))
		}
		l.Info("automigrate done")
	}
	return db
}

func JWTer(cfg *config.Config) *auth.JWTer {
	return &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
}

// Cache redis 不可用时只告警，服务降级为直连 DB
func Cache(cfg *config.Config, l *zap.Logger) *cache.Cache {
	c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if !c.Enabled() {
		l.Info("product cache disabled")
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		l.Warn("redis ping failed, cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		_ = c.Close()
		return nil
	}
	l.Info("product cache enabled", zap.String("addr", cfg.Redis.Addr))
	return c
}

// Health 供 /health 使用：DB 必须可达，redis 可选
func Health(db *gorm.DB, c *cache.Cache) func(context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return err
		}
		return c.Ping(ctx)
	}
}
