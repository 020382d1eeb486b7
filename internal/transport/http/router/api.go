package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-gin-gorm-shop/internal/core/auth"
	"go-gin-gorm-shop/internal/core/config"
	"go-gin-gorm-shop/internal/core/server"
	mdw "go-gin-gorm-shop/internal/transport/http/middleware"
	resp "go-gin-gorm-shop/internal/transport/http/response"
)

// HealthFunc 检查下游（DB、redis）；nil 表示只回 ok
type HealthFunc func(context.Context) error

func NewAPIEngine(l *zap.Logger, lim config.Limits, basePath string, jwter *auth.JWTer, health HealthFunc, reg *Registry) *gin.Engine {
	r := server.NewRouter(l)
	r.Use(commonMiddleware(l, lim)...)
	r.NoRoute(func(c *gin.Context) { resp.Abort(c, resp.CodeNotFound, "") })

	r.GET("/health", healthHandler(health))
	r.GET("/metrics", mdw.MetricsHandler())

	api := r.Group(basePath)

	// 鉴权分组：只解析 token，具体角色由 Action.Roles 判断
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter, ""))

	reg.MountAllAPI(api, authed)
	return r
}

func commonMiddleware(l *zap.Logger, lim config.Limits) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		mdw.RequestID(),
		mdw.RateLimit(rate.Limit(orDefault(lim.RPS, 200)), int(orDefault(float64(lim.Burst), 400))),
		mdw.ConcurrencyLimit(int64(orDefault(float64(lim.MaxConcurrency), 300))),
		mdw.MaxBodyBytes(int64(orDefault(float64(lim.MaxBodyMB), 16)) << 20),
		mdw.Timeout(time.Duration(orDefault(float64(lim.TimeoutSec), 10)) * time.Second),
		mdw.Metrics(),
		mdw.AccessLog(l),
	}
}

func healthHandler(check HealthFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"ok": 0, "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	}
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
