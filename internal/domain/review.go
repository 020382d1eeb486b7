package domain

import (
	"context"
	"time"
)

const (
	MinGrade = 1
	MaxGrade = 5
)

type Review struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	ProductID   uint      `gorm:"not null;index" json:"product_id"`
	Comment     *string   `gorm:"type:text" json:"comment"`
	CommentDate time.Time `gorm:"autoCreateTime" json:"comment_date"`
	Grade       int       `gorm:"not null" json:"grade"`
	IsActive    bool      `gorm:"not null;default:true;index" json:"is_active"`

	User    *User    `gorm:"foreignKey:UserID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (Review) TableName() string { return "reviews" }

type ReviewInput struct {
	ProductID uint
	Grade     int
	Comment   *string
}

type ReviewRepository interface {
	Create(ctx context.Context, r *Review) error
	ListActive(ctx context.Context) ([]Review, error)
	ListActiveByProduct(ctx context.Context, productID uint) ([]Review, error)
	FindActive(ctx context.Context, id uint) (*Review, error)
	// FindActiveByUser 查找用户的活跃评论；productID 为 0 时不限定商品
	FindActiveByUser(ctx context.Context, userID, productID uint) (*Review, error)
	Deactivate(ctx context.Context, id uint) error
	// AverageGrade 返回活跃评论的平均分，无评论时为 0
	AverageGrade(ctx context.Context, productID uint) (float64, error)
}
