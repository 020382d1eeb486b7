package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-gin-gorm-shop/internal/domain"
)

// 全量覆盖时写入的列；seller_id/rating/is_active 不在其中
var productWritableColumns = []string{"name", "description", "price", "image_url", "stock", "category_id"}

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Omit("Category", "Seller").Create(p).Error
}

func (r *ProductRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	var ps []domain.Product
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("id").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *ProductRepo) ListActiveByCategory(ctx context.Context, categoryID uint) ([]domain.Product, error) {
	var ps []domain.Product
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Order("id").Find(&ps).Error
	if err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *ProductRepo) FindActive(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Overwrite 用 Select 强制写入零值字段（nil 描述、0 库存等）
func (r *ProductRepo) Overwrite(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ?", p.ID).
		Select(productWritableColumns).
		Updates(p).Error
}

func (r *ProductRepo) Deactivate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *ProductRepo) SetRating(ctx context.Context, id uint, rating float64) error {
	return r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ?", id).
		Update("rating", rating).Error
}
