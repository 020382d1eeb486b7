package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-gin-gorm-shop/internal/core/bootstrap"
	"go-gin-gorm-shop/internal/core/config"
	"go-gin-gorm-shop/internal/domain"
	"go-gin-gorm-shop/internal/repo"
	"go-gin-gorm-shop/internal/service"
)

func main() {
	var (
		adminEmail = flag.String("admin-email", os.Getenv("SEED_ADMIN_EMAIL"), "admin account to create")
		adminPass  = flag.String("admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "admin password")
		categories = flag.String("categories", "Electronics,Books,Clothing,Home", "comma separated category names")
	)
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := bootstrap.Logger(cfg)
	defer cleanup()

	// 种子数据总是确保表存在
	cfg.DB.AutoMigrate = true
	db := bootstrap.MustOpenDB(cfg, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *adminEmail != "" {
		if len(*adminPass) < 6 {
			log.Fatal("admin password must be at least 6 characters")
		}
		users := service.NewUserService(repo.NewUserRepo(db))
		u, err := users.CreateUser(ctx, *adminEmail, *adminPass, domain.RoleAdmin)
		switch {
		case errors.Is(err, domain.ErrConflict):
			log.Info("admin already exists, skipped", zap.String("email", *adminEmail))
		case err != nil:
			log.Fatal("create admin", zap.Error(err))
		default:
			log.Info("admin created", zap.Uint("id", u.ID), zap.String("email", u.Email))
		}
	}

	catSvc := service.NewCategoryService(repo.NewCategoryRepo(db))
	created, skipped := 0, 0
	for _, name := range strings.Split(*categories, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		c, err := catSvc.Create(ctx, name)
		if errors.Is(err, domain.ErrConflict) {
			skipped++
			continue
		}
		if err != nil {
			log.Fatal("create category", zap.String("name", name), zap.Error(err))
		}
		created++
		log.Debug("category created", zap.Uint("id", c.ID), zap.String("name", c.Name))
	}
	log.Info("seed completed", zap.Int("categories_created", created), zap.Int("categories_skipped", skipped))
}
