package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-gin-gorm-shop/internal/transport/http/ez"
)

const maxRequestIDLen = 64

// RequestID 沿用上游传来的 X-Request-ID，不合法或缺失时生成 uuid
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(ez.KeyRequestID)
		if !validRequestID(rid) {
			rid = uuid.NewString()
		}
		c.Writer.Header().Set(ez.KeyRequestID, rid)
		c.Set(ez.KeyRequestID, rid)
		c.Next()
	}
}

// 只接受可打印 ASCII，防止日志注入
func validRequestID(s string) bool {
	if s == "" || len(s) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x21 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
