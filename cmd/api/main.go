package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-gin-gorm-shop/internal/core/bootstrap"
	"go-gin-gorm-shop/internal/core/config"
	"go-gin-gorm-shop/internal/core/logger"
	"go-gin-gorm-shop/internal/core/server"
	"go-gin-gorm-shop/internal/repo"
	"go-gin-gorm-shop/internal/service"
	"go-gin-gorm-shop/internal/transport/http/handler"
	"go-gin-gorm-shop/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := bootstrap.Logger(cfg)
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	// 数据库（失败会直接 Fatal）
	db := bootstrap.MustOpenDB(cfg, log)
	c := bootstrap.Cache(cfg, log)
	defer func() { _ = c.Close() }()

	// 依赖
	jwter := bootstrap.JWTer(cfg)
	store := repo.NewStore(db)
	productSvc := service.NewProductService(store, c, time.Duration(cfg.Cache.ProductTTLSec)*time.Second, log)
	reviewSvc := service.NewReviewService(store, c, service.ReviewPolicy{OnePerProduct: cfg.Review.OnePerProduct}, log)
	userSvc := service.NewUserService(store.Users())

	reg := router.NewRegistry(
		handler.NewAuthHandler(userSvc, jwter, log),
		handler.NewProductHandler(productSvc, log),
		handler.NewReviewHandler(reviewSvc, log),
	)

	// 路由（用户端）
	r := router.NewAPIEngine(log, cfg.App.Limits, cfg.App.HTTP.BasePath, jwter, bootstrap.Health(db, c), reg)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r, log,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	baseURL := server.HumanURL(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	log.Info("shop api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+cfg.App.HTTP.BasePath),
	)

	// 异步启动
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("shop api start FAILED", zap.Error(err))
		}
	}()
	log.Info("shop api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	log.Info("shop api stopped gracefully")
}
