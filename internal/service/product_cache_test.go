package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-gin-gorm-shop/internal/core/cache"
	"go-gin-gorm-shop/internal/domain"
)

func productKeyFor(id uint) string { return fmt.Sprintf("%s:%d", productCachePrefix, id) }

func newCachedFixture(t *testing.T) (*reviewFixture, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })

	f := newFakeStore()
	return &reviewFixture{
		f:        f,
		products: NewProductService(f, c, 30*time.Second, zap.NewNop()),
		reviews:  NewReviewService(f, c, ReviewPolicy{}, zap.NewNop()),
		cat:      f.addCategory(true),
		seller:   f.addUser(domain.RoleSeller),
		admin:    f.addUser(domain.RoleAdmin),
	}, mr
}

func TestCachedGetSeesRatingAfterReviewMutations(t *testing.T) {
	ctx := context.Background()
	fx, mr := newCachedFixture(t)
	p := fx.newProduct(t)
	buyer := fx.f.addUser(domain.RoleBuyer)

	assert.Equal(t, 0.0, fx.rating(t, p.ID))
	assert.True(t, mr.Exists(productKeyFor(p.ID)))

	rv, err := fx.reviews.Create(ctx, buyer, domain.ReviewInput{ProductID: p.ID, Grade: 4})
	require.NoError(t, err)
	assert.False(t, mr.Exists(productKeyFor(p.ID)))
	assert.Equal(t, 4.0, fx.rating(t, p.ID))

	require.NoError(t, fx.reviews.Delete(ctx, fx.admin, rv.ID))
	assert.Equal(t, 0.0, fx.rating(t, p.ID))
}

// Get 读到旧行之后、回填缓存之前有评论提交：回填必须放弃，下一次 Get 拿到新评分
func TestCachedGetDoesNotRefillStaleRowAfterConcurrentReview(t *testing.T) {
	ctx := context.Background()
	fx, mr := newCachedFixture(t)
	p := fx.newProduct(t)
	buyer := fx.f.addUser(domain.RoleBuyer)

	fx.f.afterProductRead = func() {
		_, err := fx.reviews.Create(ctx, buyer, domain.ReviewInput{ProductID: p.ID, Grade: 5})
		require.NoError(t, err)
	}

	// 这次拿到的是提交前读到的行
	assert.Equal(t, 0.0, fx.rating(t, p.ID))
	assert.Equal(t, 5.0, fx.f.product(p.ID).Rating)
	assert.False(t, mr.Exists(productKeyFor(p.ID)))

	assert.Equal(t, 5.0, fx.rating(t, p.ID))
	assert.True(t, mr.Exists(productKeyFor(p.ID)))
	assert.Equal(t, 5.0, fx.rating(t, p.ID))
}

func TestCachedProductUpdateAndDeleteInvalidate(t *testing.T) {
	ctx := context.Background()
	fx, _ := newCachedFixture(t)
	p := fx.newProduct(t)

	got, err := fx.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lamp", got.Name)

	in := lampInput(fx.cat)
	in.Name = "Desk Lamp"
	_, err = fx.products.Update(ctx, fx.seller, p.ID, in)
	require.NoError(t, err)

	got, err = fx.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", got.Name)

	require.NoError(t, fx.products.SoftDelete(ctx, fx.seller, p.ID))
	_, err = fx.products.Get(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
