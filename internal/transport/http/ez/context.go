package ez

import (
	"github.com/gin-gonic/gin"

	"go-gin-gorm-shop/internal/domain"
)

const (
	KeyCaller    = "caller"
	KeyRequestID = "X-Request-ID"
)

func SetCaller(c *gin.Context, caller domain.Caller) { c.Set(KeyCaller, caller) }

func CallerFrom(c *gin.Context) (domain.Caller, bool) {
	v, ok := c.Get(KeyCaller)
	if !ok {
		return domain.Caller{}, false
	}
	caller, ok := v.(domain.Caller)
	return caller, ok && caller.ID != 0
}

// MustCaller 只在声明了 Roles 的 Action 里用，此时 caller 一定存在
func MustCaller(c *gin.Context) domain.Caller {
	caller, _ := CallerFrom(c)
	return caller
}
