package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"go-gin-gorm-shop/internal/core/cache"
	"go-gin-gorm-shop/internal/domain"
)

// 商品详情缓存的 key 前缀，评论变更后也要失效它
const productCachePrefix = "product"

type ProductService struct {
	store  domain.Store
	cached *cache.Entity[domain.Product]
	log    *zap.Logger
}

// NewProductService c 可以为 nil（不走缓存）
func NewProductService(store domain.Store, c *cache.Cache, ttl time.Duration, l *zap.Logger) *ProductService {
	return &ProductService{
		store:  store,
		cached: cache.NewEntity[domain.Product](c, productCachePrefix, ttl),
		log:    l.Named("product"),
	}
}

func (s *ProductService) Create(ctx context.Context, caller domain.Caller, in domain.ProductInput) (*domain.Product, error) {
	if caller.Role != domain.RoleSeller {
		return nil, domain.Forbidden("Only sellers can create products")
	}
	p := &domain.Product{SellerID: caller.ID, IsActive: true}
	in.Apply(p)

	err := s.store.WithTx(ctx, func(tx domain.Store) error {
		if err := requireActiveCategory(ctx, tx, in.CategoryID); err != nil {
			return err
		}
		return tx.Products().Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	productMutations.WithLabelValues("create").Inc()
	s.log.Info("product created", zap.Uint("id", p.ID), zap.Uint("seller_id", p.SellerID))
	return p, nil
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.store.Products().ListActive(ctx)
}

func (s *ProductService) ListByCategory(ctx context.Context, categoryID uint) ([]domain.Product, error) {
	c, err := s.store.Categories().FindActive(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("Category not found")
	}
	return s.store.Products().ListActiveByCategory(ctx, categoryID)
}

// Get 分类被停用的商品视为不可用，即使商品本身仍是 active
func (s *ProductService) Get(ctx context.Context, id uint) (*domain.Product, error) {
	p, err := s.cached.Get(ctx, id, func(ctx context.Context) (*domain.Product, error) {
		p, err := s.store.Products().FindActive(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.NotFound("Product not found")
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	// 分类状态不进缓存，每次实时查
	c, err := s.store.Categories().FindActive(ctx, p.CategoryID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.InvalidReference("Category not found")
	}
	return p, nil
}

// Update 全量覆盖；只允许 active 商品的所属卖家修改
func (s *ProductService) Update(ctx context.Context, caller domain.Caller, id uint, in domain.ProductInput) (*domain.Product, error) {
	var out *domain.Product
	err := s.store.WithTx(ctx, func(tx domain.Store) error {
		p, err := tx.Products().FindActive(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFound("Product not found")
		}
		if p.SellerID != caller.ID {
			return domain.Forbidden("You can only update your own products")
		}
		if err := requireActiveCategory(ctx, tx, in.CategoryID); err != nil {
			return err
		}
		in.Apply(p)
		if err := tx.Products().Overwrite(ctx, p); err != nil {
			return err
		}
		out, err = tx.Products().FindActive(ctx, id)
		if err == nil && out == nil {
			err = fmt.Errorf("product %d vanished during update", id)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	s.cached.Invalidate(ctx, id)
	productMutations.WithLabelValues("update").Inc()
	return out, nil
}

// SoftDelete 只置 is_active=false，不级联评论
func (s *ProductService) SoftDelete(ctx context.Context, caller domain.Caller, id uint) error {
	err := s.store.WithTx(ctx, func(tx domain.Store) error {
		p, err := tx.Products().FindActive(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFound("Product not found")
		}
		if p.SellerID != caller.ID {
			return domain.Forbidden("You can only delete your own products")
		}
		return tx.Products().Deactivate(ctx, id)
	})
	if err != nil {
		return err
	}
	s.cached.Invalidate(ctx, id)
	productMutations.WithLabelValues("delete").Inc()
	s.log.Info("product deactivated", zap.Uint("id", id), zap.Uint("seller_id", caller.ID))
	return nil
}

func requireActiveCategory(ctx context.Context, tx domain.Store, categoryID uint) error {
	c, err := tx.Categories().FindActive(ctx, categoryID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.InvalidReference("Category not found")
	}
	return nil
}
