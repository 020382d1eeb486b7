package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-shop/internal/domain"
	"go-gin-gorm-shop/internal/transport/http/ez"
)

type UserAdminService interface {
	CreateUser(ctx context.Context, email, password string, role domain.Role) (*domain.User, error)
	List(ctx context.Context, q string, offset, limit int) ([]domain.User, int64, error)
	Deactivate(ctx context.Context, id uint) error
}

type CategoryService interface {
	Create(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context, includeInactive bool) ([]domain.Category, error)
	Deactivate(ctx context.Context, id uint) error
}

// AdminHandler 管理端：用户与分类；分组已统一要求 admin 角色
type AdminHandler struct {
	users      UserAdminService
	categories CategoryService
	log        *zap.Logger
}

func NewAdminHandler(users UserAdminService, categories CategoryService, l *zap.Logger) *AdminHandler {
	return &AdminHandler{users: users, categories: categories, log: l}
}

type userListQ struct {
	Offset int    `form:"offset,default=0"`
	Limit  int    `form:"limit,default=20"`
	Q      string `form:"q"` // 按 email 模糊搜
}

type userListOut struct {
	Total int64         `json:"total"`
	Items []domain.User `json:"items"`
}

type createUserIn struct {
	Email    string      `json:"email"    binding:"required,email,max=191"`
	Password string      `json:"password" binding:"required,min=6,max=72"`
	Role     domain.Role `json:"role"     binding:"required,oneof=buyer seller admin"`
}

type idURI struct {
	ID uint `uri:"id" binding:"required,min=1"`
}

type categoryListQ struct {
	All bool `form:"all"` // 包含已停用
}

type createCategoryIn struct {
	Name string `json:"name" binding:"required,max=100"`
}

func (h *AdminHandler) MountAdmin(admin *gin.RouterGroup) {
	e := ez.New(admin, h.log)

	ez.RegisterAction(e, ez.Action[userListQ, userListOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *userListQ) (userListOut, error) {
			us, total, err := h.users.List(c.Request.Context(), in.Q, in.Offset, in.Limit)
			if err != nil {
				return userListOut{}, err
			}
			return userListOut{Total: total, Items: orEmpty(us)}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[createUserIn, *domain.User]{
		Method: http.MethodPost,
		Path:   "/users",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *createUserIn) (*domain.User, error) {
			return h.users.CreateUser(c.Request.Context(), in.Email, in.Password, in.Role)
		},
	})

	ez.RegisterAction(e, ez.Action[idURI, gin.H]{
		Method: http.MethodPost,
		Path:   "/users/:id/deactivate",
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *idURI) (gin.H, error) {
			if err := h.users.Deactivate(c.Request.Context(), in.ID); err != nil {
				return nil, err
			}
			return gin.H{"id": in.ID}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[categoryListQ, []domain.Category]{
		Method: http.MethodGet,
		Path:   "/categories",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *categoryListQ) ([]domain.Category, error) {
			cs, err := h.categories.List(c.Request.Context(), in.All)
			return orEmpty(cs), err
		},
	})

	ez.RegisterAction(e, ez.Action[createCategoryIn, *domain.Category]{
		Method: http.MethodPost,
		Path:   "/categories",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *createCategoryIn) (*domain.Category, error) {
			return h.categories.Create(c.Request.Context(), in.Name)
		},
	})

	ez.RegisterAction(e, ez.Action[idURI, gin.H]{
		Method: http.MethodPost,
		Path:   "/categories/:id/deactivate",
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *idURI) (gin.H, error) {
			if err := h.categories.Deactivate(c.Request.Context(), in.ID); err != nil {
				return nil, err
			}
			return gin.H{"id": in.ID}, nil
		},
	})
}
