package ez

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-shop/internal/domain"
	resp "go-gin-gorm-shop/internal/transport/http/response"
)

// EZ 绑定到一个路由分组上的轻封装
type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ {
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, log: l}
}

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON body 绑定
	BindQuery Binder = "query" // 从 ?a=b 绑定
	BindURI   Binder = "uri"   // 从 :param 绑定（uri tag）
	BindNone  Binder = "none"  // 不绑定
)

// AErr 传输层错误，Code 即 HTTP 状态
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// Action I 入参，O 出参
type Action[I any, O any] struct {
	Method  string        // GET / POST / PUT / DELETE
	Path    string        // 例："/products/:product_id"
	Binder  Binder        // 绑定方式；BindURI 时 I 用 uri tag
	Roles   []domain.Role // 非空时要求已登录且角色匹配
	Status  int           // 成功状态码，默认 200
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 在当前分组注册：鉴权 → 绑定 → 执行 → 统一错误映射
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := func(c *gin.Context) {
		// 1) 角色
		if len(a.Roles) > 0 {
			caller, ok := CallerFrom(c)
			if !ok {
				resp.Abort(c, resp.CodeUnauthorized, "unauthorized")
				return
			}
			if !hasRole(a.Roles, caller.Role) {
				resp.Abort(c, resp.CodeForbidden, "forbidden")
				return
			}
		}

		// 2) 入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		case BindURI:
			bindErr = c.ShouldBindUri(&in)
		}
		if bindErr != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(bindErr, &tooLarge) {
				resp.Abort(c, resp.CodeTooLarge, "request body too large")
				return
			}
			resp.Abort(c, resp.CodeBadRequest, bindErr.Error())
			return
		}

		// 3) 执行
		out, err := a.Handler(c, &in)
		if err != nil {
			code, msg := e.mapError(c, err)
			resp.Abort(c, code, msg)
			return
		}
		c.JSON(status, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // POST
		e.g.POST(a.Path, h)
	}
}

// mapError 业务错误按种类映射；未知错误记日志并只回通用文案
func (e EZ) mapError(c *gin.Context, err error) (int, string) {
	var ae *AErr
	if errors.As(err, &ae) {
		if ae.Code >= 500 {
			e.log.Error("action failed", zap.String("path", c.FullPath()),
				zap.String("rid", c.GetString(KeyRequestID)), zap.Error(err))
		}
		return ae.Code, ae.Error()
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return StatusOf(de.Kind), de.Msg
	}
	e.log.Error("action failed", zap.String("path", c.FullPath()),
		zap.String("rid", c.GetString(KeyRequestID)), zap.Error(err))
	return resp.CodeServerError, resp.CodeMsgMap[resp.CodeServerError]
}

func StatusOf(k domain.Kind) int {
	switch k {
	case domain.KindNotFound:
		return resp.CodeNotFound
	case domain.KindInvalidReference, domain.KindInvalidInput:
		return resp.CodeBadRequest
	case domain.KindForbidden:
		return resp.CodeForbidden
	case domain.KindConflict:
		return resp.CodeConflict
	}
	return resp.CodeServerError
}

func hasRole(roles []domain.Role, role domain.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// ParamID 解析正整数路径参数
func ParamID(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, BadRequest("invalid " + name)
	}
	return uint(v), nil
}
