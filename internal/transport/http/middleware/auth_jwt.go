package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"go-gin-gorm-shop/internal/core/auth"
	"go-gin-gorm-shop/internal/domain"
	"go-gin-gorm-shop/internal/transport/http/ez"
	resp "go-gin-gorm-shop/internal/transport/http/response"
)

// AuthJWT 解析 Bearer token 并把 Caller 放进上下文；requireRole 为空时只要求登录
func AuthJWT(j *auth.JWTer, requireRole domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := j.ParseBearer(c.GetHeader("Authorization"))
		if errors.Is(err, auth.ErrMissingToken) {
			resp.Abort(c, resp.CodeUnauthorized, "missing token")
			return
		}
		if err != nil {
			resp.Abort(c, resp.CodeUnauthorized, "invalid token")
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			resp.Abort(c, resp.CodeForbidden, "forbidden")
			return
		}
		ez.SetCaller(c, claims.Caller())
		c.Next()
	}
}
