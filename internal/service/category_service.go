package service

import (
	"context"
	"strings"

	"go-gin-gorm-shop/internal/domain"
	"go-gin-gorm-shop/pkg/utils"
)

type CategoryService struct {
	categories domain.CategoryRepository
}

func NewCategoryService(categories domain.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.InvalidInput("name is required")
	}
	c := &domain.Category{Name: name, IsActive: true}
	if err := s.categories.Create(ctx, c); err != nil {
		if utils.IsDupKey(err) {
			return nil, domain.Conflict("Category already exists")
		}
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) List(ctx context.Context, includeInactive bool) ([]domain.Category, error) {
	return s.categories.List(ctx, includeInactive)
}

// Deactivate 停用分类；其下商品不改 is_active，但 Get 时不可见
func (s *CategoryService) Deactivate(ctx context.Context, id uint) error {
	ok, err := s.categories.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("Category not found")
	}
	return nil
}
