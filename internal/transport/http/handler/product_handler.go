package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-gin-gorm-shop/internal/domain"
	"go-gin-gorm-shop/internal/transport/http/ez"
)

type ProductService interface {
	Create(ctx context.Context, caller domain.Caller, in domain.ProductInput) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]domain.Product, error)
	Get(ctx context.Context, id uint) (*domain.Product, error)
	Update(ctx context.Context, caller domain.Caller, id uint, in domain.ProductInput) (*domain.Product, error)
	SoftDelete(ctx context.Context, caller domain.Caller, id uint) error
}

type ProductHandler struct {
	svc ProductService
	log *zap.Logger
}

func NewProductHandler(svc ProductService, l *zap.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, log: l}
}

// ProductRequest POST/PUT 共用；PUT 为全量覆盖，未传的可选字段会被清空
type ProductRequest struct {
	Name        string          `json:"name"        binding:"required,max=100"`
	Description *string         `json:"description" binding:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    *string         `json:"image_url"   binding:"omitempty,max=200"`
	Stock       int             `json:"stock"       binding:"min=0"`
	CategoryID  uint            `json:"category_id" binding:"required"`
}

func (r *ProductRequest) toInput() (domain.ProductInput, error) {
	if !r.Price.IsPositive() {
		return domain.ProductInput{}, ez.BadRequest("price must be greater than 0")
	}
	if !r.Price.Equal(r.Price.Round(2)) {
		return domain.ProductInput{}, ez.BadRequest("price must have at most 2 decimal places")
	}
	if r.Price.GreaterThanOrEqual(decimal.New(1, 8)) {
		return domain.ProductInput{}, ez.BadRequest("price is too large")
	}
	return domain.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price.Round(2),
		ImageURL:    r.ImageURL,
		Stock:       r.Stock,
		CategoryID:  r.CategoryID,
	}, nil
}

type productURI struct {
	ID uint `uri:"product_id" binding:"required,min=1"`
}

type categoryURI struct {
	ID uint `uri:"category_id" binding:"required,min=1"`
}

func (h *ProductHandler) MountAPI(public, authed *gin.RouterGroup) {
	pub := ez.New(public, h.log)
	auth := ez.New(authed, h.log)

	ez.RegisterAction(auth, ez.Action[ProductRequest, *domain.Product]{
		Method: http.MethodPost,
		Path:   "/products/",
		Binder: ez.BindJSON,
		Roles:  []domain.Role{domain.RoleSeller},
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *ProductRequest) (*domain.Product, error) {
			pin, err := in.toInput()
			if err != nil {
				return nil, err
			}
			return h.svc.Create(c.Request.Context(), ez.MustCaller(c), pin)
		},
	})

	ez.RegisterAction(pub, ez.Action[struct{}, []domain.Product]{
		Method: http.MethodGet,
		Path:   "/products/",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Product, error) {
			ps, err := h.svc.List(c.Request.Context())
			return orEmpty(ps), err
		},
	})

	ez.RegisterAction(pub, ez.Action[categoryURI, []domain.Product]{
		Method: http.MethodGet,
		Path:   "/products/category/:category_id",
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *categoryURI) ([]domain.Product, error) {
			ps, err := h.svc.ListByCategory(c.Request.Context(), in.ID)
			return orEmpty(ps), err
		},
	})

	ez.RegisterAction(pub, ez.Action[productURI, *domain.Product]{
		Method: http.MethodGet,
		Path:   "/products/:product_id",
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *productURI) (*domain.Product, error) {
			return h.svc.Get(c.Request.Context(), in.ID)
		},
	})

	ez.RegisterAction(auth, ez.Action[ProductRequest, *domain.Product]{
		Method: http.MethodPut,
		Path:   "/products/:product_id",
		Binder: ez.BindJSON,
		Roles:  []domain.Role{domain.RoleSeller},
		Handler: func(c *gin.Context, in *ProductRequest) (*domain.Product, error) {
			id, err := ez.ParamID(c, "product_id")
			if err != nil {
				return nil, err
			}
			pin, err := in.toInput()
			if err != nil {
				return nil, err
			}
			return h.svc.Update(c.Request.Context(), ez.MustCaller(c), id, pin)
		},
	})

	ez.RegisterAction(auth, ez.Action[productURI, gin.H]{
		Method: http.MethodDelete,
		Path:   "/products/:product_id",
		Binder: ez.BindURI,
		Roles:  []domain.Role{domain.RoleSeller},
		Handler: func(c *gin.Context, in *productURI) (gin.H, error) {
			if err := h.svc.SoftDelete(c.Request.Context(), ez.MustCaller(c), in.ID); err != nil {
				return nil, err
			}
			return gin.H{"id": in.ID, "message": "Product marked as inactive"}, nil
		},
	})
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
