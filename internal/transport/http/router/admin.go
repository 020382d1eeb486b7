package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-gin-gorm-shop/internal/core/auth"
	"go-gin-gorm-shop/internal/core/config"
	"go-gin-gorm-shop/internal/core/server"
	"go-gin-gorm-shop/internal/domain"
	mdw "go-gin-gorm-shop/internal/transport/http/middleware"
	resp "go-gin-gorm-shop/internal/transport/http/response"
)

func NewAdminEngine(l *zap.Logger, lim config.Limits, jwter *auth.JWTer, health HealthFunc, reg *Registry) *gin.Engine {
	r := server.NewRouter(l)
	r.Use(mdw.RateLimitPerIP(rate.Limit(20), 40))
	r.Use(commonMiddleware(l, lim)...)
	r.NoRoute(func(c *gin.Context) { resp.Abort(c, resp.CodeNotFound, "") })

	r.GET("/health", healthHandler(health))

	// 管理端 v1（统一要求 admin 角色）
	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, domain.RoleAdmin))

	reg.MountAllAdmin(admin)
	return r
}
