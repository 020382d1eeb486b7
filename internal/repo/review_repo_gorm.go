package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"go-gin-gorm-shop/internal/domain"
)

type ReviewRepo struct{ db *gorm.DB }

func NewReviewRepo(db *gorm.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Omit("User", "Product").Create(rv).Error
}

func (r *ReviewRepo) ListActive(ctx context.Context) ([]domain.Review, error) {
	var rs []domain.Review
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("id").Find(&rs).Error; err != nil {
		return nil, err
	}
	return rs, nil
}

func (r *ReviewRepo) ListActiveByProduct(ctx context.Context, productID uint) ([]domain.Review, error) {
	var rs []domain.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND is_active = ?", productID, true).
		Order("id").Find(&rs).Error
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func (r *ReviewRepo) FindActive(ctx context.Context, id uint) (*domain.Review, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true))
}

func (r *ReviewRepo) FindActiveByUser(ctx context.Context, userID, productID uint) (*domain.Review, error) {
	q := r.db.WithContext(ctx).Where("user_id = ? AND is_active = ?", userID, true)
	if productID != 0 {
		q = q.Where("product_id = ?", productID)
	}
	return r.first(q)
}

func (r *ReviewRepo) first(q *gorm.DB) (*domain.Review, error) {
	var rv domain.Review
	err := q.First(&rv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepo) Deactivate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *ReviewRepo) AverageGrade(ctx context.Context, productID uint) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Select("COALESCE(AVG(grade), 0)").
		Where("product_id = ? AND is_active = ?", productID, true).
		Row().Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("average grade: %w", err)
	}
	return avg, nil
}
