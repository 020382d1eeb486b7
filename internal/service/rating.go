package service

import (
	"context"
	"fmt"

	"go-gin-gorm-shop/internal/domain"
)

// RecalculateRating 用 tx 内当前（含未提交）的活跃评论重算商品评分并写回。
// 必须在评论变更的同一事务里调用，失败时整个事务回滚。
func RecalculateRating(ctx context.Context, tx domain.Store, productID uint) (float64, error) {
	avg, err := tx.Reviews().AverageGrade(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("recalculate rating of product %d: %w", productID, err)
	}
	if err := tx.Products().SetRating(ctx, productID, avg); err != nil {
		return 0, fmt.Errorf("store rating of product %d: %w", productID, err)
	}
	ratingRecalcTotal.Inc()
	return avg, nil
}
