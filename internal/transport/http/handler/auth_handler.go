package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-shop/internal/core/auth"
	"go-gin-gorm-shop/internal/domain"
	"go-gin-gorm-shop/internal/service"
	"go-gin-gorm-shop/internal/transport/http/ez"
)

type AccountService interface {
	Register(ctx context.Context, email, password string, role domain.Role) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	Get(ctx context.Context, id uint) (*domain.User, error)
}

type AuthHandler struct {
	svc   AccountService
	jwter *auth.JWTer
	log   *zap.Logger
}

func NewAuthHandler(svc AccountService, jwter *auth.JWTer, l *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, jwter: jwter, log: l}
}

type registerIn struct {
	Email    string      `json:"email"    binding:"required,email,max=191"`
	Password string      `json:"password" binding:"required,min=6,max=72"`
	Role     domain.Role `json:"role"     binding:"omitempty,oneof=buyer seller"`
}

type loginIn struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginOut struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (h *AuthHandler) MountAPI(public, authed *gin.RouterGroup) {
	pub := ez.New(public, h.log)
	me := ez.New(authed, h.log)

	ez.RegisterAction(pub, ez.Action[registerIn, *domain.User]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *registerIn) (*domain.User, error) {
			return h.svc.Register(c.Request.Context(), in.Email, in.Password, in.Role)
		},
	})

	ez.RegisterAction(pub, ez.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			u, err := h.svc.Authenticate(c.Request.Context(), in.Email, in.Password)
			if errors.Is(err, service.ErrInvalidCredentials) {
				return loginOut{}, ez.Unauthorized("invalid credentials")
			}
			if err != nil {
				return loginOut{}, err
			}
			tok, err := h.jwter.Issue(u.ID, u.Role)
			if err != nil {
				return loginOut{}, ez.Internal("issue token failed", err)
			}
			return loginOut{Token: tok, User: u}, nil
		},
	})

	ez.RegisterAction(me, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: ez.BindNone,
		Roles:  []domain.Role{domain.RoleBuyer, domain.RoleSeller, domain.RoleAdmin},
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			return h.svc.Get(c.Request.Context(), ez.MustCaller(c).ID)
		},
	})
}
