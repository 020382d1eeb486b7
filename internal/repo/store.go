package repo

import (
	"context"

	"gorm.io/gorm"

	"go-gin-gorm-shop/internal/domain"
)

// Store 是 domain.Store 的 gorm 实现
type Store struct {
	db         *gorm.DB
	users      *UserRepo
	categories *CategoryRepo
	products   *ProductRepo
	reviews    *ReviewRepo
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:         db,
		users:      NewUserRepo(db),
		categories: NewCategoryRepo(db),
		products:   NewProductRepo(db),
		reviews:    NewReviewRepo(db),
	}
}

func (s *Store) Users() domain.UserRepository           { return s.users }
func (s *Store) Categories() domain.CategoryRepository { return s.categories }
func (s *Store) Products() domain.ProductRepository     { return s.products }
func (s *Store) Reviews() domain.ReviewRepository       { return s.reviews }

// WithTx 开启事务（Session 里关了默认事务，写操作需显式走这里）
func (s *Store) WithTx(ctx context.Context, fn func(tx domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Migrate 按外键依赖顺序建表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(domain.Models()...)
}
