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

	db := bootstrap.MustOpenDB(cfg, log)

	// 依赖
	jwter := bootstrap.JWTer(cfg)
	adminH := handler.NewAdminHandler(
		service.NewUserService(repo.NewUserRepo(db)),
		service.NewCategoryService(repo.NewCategoryRepo(db)),
		log,
	)

	// 路由（后台端）
	r := router.NewAdminEngine(log, cfg.App.Limits, jwter, bootstrap.Health(db, nil), router.NewRegistry(adminH))

	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, log, 5*time.Second, 10*time.Second, 60*time.Second)

	baseURL := server.HumanURL(cfg.App.Admin.Host, cfg.App.Admin.Port)
	log.Info("admin api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("admin_v1", baseURL+"/admin/v1"),
	)

	// 异步启动；失败立即退出
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("admin api start FAILED", zap.Error(err))
		}
	}()
	log.Info("admin api started SUCCESS")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("admin api stopped gracefully")
}
