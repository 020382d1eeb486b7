package domain

import (
	"context"
	"time"
)

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Category) TableName() string { return "categories" }

type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	List(ctx context.Context, includeInactive bool) ([]Category, error)
	FindActive(ctx context.Context, id uint) (*Category, error)
	Deactivate(ctx context.Context, id uint) (bool, error)
}
