package domain

import "context"

// Store 聚合各仓储；WithTx 内拿到的 Store 共享同一个事务
type Store interface {
	Users() UserRepository
	Categories() CategoryRepository
	Products() ProductRepository
	Reviews() ReviewRepository
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

// Models 返回需要自动迁移的模型，顺序满足外键依赖
func Models() []any {
	return []any{&User{}, &Category{}, &Product{}, &Review{}}
}
