package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-shop/internal/domain"
	"go-gin-gorm-shop/internal/transport/http/ez"
)

type ReviewService interface {
	ListAll(ctx context.Context) ([]domain.Review, error)
	ListForProduct(ctx context.Context, productID uint) ([]domain.Review, error)
	Create(ctx context.Context, caller domain.Caller, in domain.ReviewInput) (*domain.Review, error)
	Delete(ctx context.Context, caller domain.Caller, id uint) error
}

type ReviewHandler struct {
	svc ReviewService
	log *zap.Logger
}

func NewReviewHandler(svc ReviewService, l *zap.Logger) *ReviewHandler {
	return &ReviewHandler{svc: svc, log: l}
}

type ReviewRequest struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Grade     int     `json:"grade"      binding:"required,min=1,max=5"`
	Comment   *string `json:"comment"`
}

type reviewURI struct {
	ID uint `uri:"review_id" binding:"required,min=1"`
}

func (h *ReviewHandler) MountAPI(public, authed *gin.RouterGroup) {
	pub := ez.New(public, h.log)
	auth := ez.New(authed, h.log)

	ez.RegisterAction(pub, ez.Action[struct{}, []domain.Review]{
		Method: http.MethodGet,
		Path:   "/reviews/",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Review, error) {
			rs, err := h.svc.ListAll(c.Request.Context())
			return orEmpty(rs), err
		},
	})

	ez.RegisterAction(pub, ez.Action[productURI, []domain.Review]{
		Method: http.MethodGet,
		Path:   "/reviews/products/:product_id/reviews",
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *productURI) ([]domain.Review, error) {
			rs, err := h.svc.ListForProduct(c.Request.Context(), in.ID)
			return orEmpty(rs), err
		},
	})

	ez.RegisterAction(auth, ez.Action[ReviewRequest, *domain.Review]{
		Method: http.MethodPost,
		Path:   "/reviews/",
		Binder: ez.BindJSON,
		Roles:  []domain.Role{domain.RoleBuyer},
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *ReviewRequest) (*domain.Review, error) {
			return h.svc.Create(c.Request.Context(), ez.MustCaller(c), domain.ReviewInput{
				ProductID: in.ProductID,
				Grade:     in.Grade,
				Comment:   in.Comment,
			})
		},
	})

	ez.RegisterAction(auth, ez.Action[reviewURI, gin.H]{
		Method: http.MethodDelete,
		Path:   "/reviews/:review_id",
		Binder: ez.BindURI,
		Roles:  []domain.Role{domain.RoleAdmin},
		Handler: func(c *gin.Context, in *reviewURI) (gin.H, error) {
			if err := h.svc.Delete(c.Request.Context(), ez.MustCaller(c), in.ID); err != nil {
				return nil, err
			}
			return gin.H{"id": in.ID, "message": "Review deleted"}, nil
		},
	})
}
