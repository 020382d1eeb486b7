package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Description *string         `gorm:"size:500" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL    *string         `gorm:"size:200" json:"image_url"`
	Stock       int             `gorm:"not null" json:"stock"`
	IsActive    bool            `gorm:"not null;default:true;index" json:"is_active"`
	CategoryID  uint            `gorm:"not null;index" json:"category_id"`
	SellerID    uint            `gorm:"not null;index" json:"seller_id"`
	Rating      float64         `gorm:"not null;default:0" json:"rating"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"-"`
	Seller   *User     `gorm:"foreignKey:SellerID" json:"-"`
}

func (Product) TableName() string { return "products" }

// ProductInput 是 Create/Update 共用的客户端可写字段（全量覆盖）
type ProductInput struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	ImageURL    *string
	Stock       int
	CategoryID  uint
}

// Apply 覆盖 p 的全部可写字段；SellerID/Rating/IsActive 不受客户端控制
func (in ProductInput) Apply(p *Product) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.ImageURL = in.ImageURL
	p.Stock = in.Stock
	p.CategoryID = in.CategoryID
}

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	ListActive(ctx context.Context) ([]Product, error)
	ListActiveByCategory(ctx context.Context, categoryID uint) ([]Product, error)
	FindActive(ctx context.Context, id uint) (*Product, error)
	Overwrite(ctx context.Context, p *Product) error
	Deactivate(ctx context.Context, id uint) error
	SetRating(ctx context.Context, id uint, rating float64) error
}
