package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go-gin-gorm-shop/internal/domain"
)

var errDup = errors.New("duplicate key value violates unique constraint")

// memState 是内存里的一份表数据；事务通过拷贝 + 提交时替换来模拟
type memState struct {
	users      map[uint]domain.User
	categories map[uint]domain.Category
	products   map[uint]domain.Product
	reviews    map[uint]domain.Review
	nextID     uint
}

func newMemState() *memState {
	return &memState{
		users:      map[uint]domain.User{},
		categories: map[uint]domain.Category{},
		products:   map[uint]domain.Product{},
		reviews:    map[uint]domain.Review{},
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	c.nextID = s.nextID
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.reviews {
		c.reviews[k] = v
	}
	return c
}

func (s *memState) id() uint { s.nextID++; return s.nextID }

type fakeStore struct {
	st *memState
	// 故障注入
	failSetRating error
	failAverage   error
	txCount       int
	// 非事务读到商品之后回调，用来模拟读写交错
	afterProductRead func()
}

func newFakeStore() *fakeStore { return &fakeStore{st: newMemState()} }

func (f *fakeStore) Users() domain.UserRepository           { return fakeUsers{f} }
func (f *fakeStore) Categories() domain.CategoryRepository { return fakeCategories{f} }
func (f *fakeStore) Products() domain.ProductRepository     { return fakeProducts{f} }
func (f *fakeStore) Reviews() domain.ReviewRepository       { return fakeReviews{f} }

func (f *fakeStore) WithTx(ctx context.Context, fn func(tx domain.Store) error) error {
	f.txCount++
	tx := &fakeStore{st: f.st.clone(), failSetRating: f.failSetRating, failAverage: f.failAverage}
	if err := fn(tx); err != nil {
		return err
	}
	f.st = tx.st
	return nil
}

// seed helpers

func (f *fakeStore) addCategory(active bool) uint {
	id := f.st.id()
	f.st.categories[id] = domain.Category{ID: id, Name: "c", IsActive: active}
	return id
}

func (f *fakeStore) addUser(role domain.Role) domain.Caller {
	id := f.st.id()
	f.st.users[id] = domain.User{ID: id, Email: fmt.Sprintf("u%d@x.io", id), Role: role, IsActive: true}
	return domain.Caller{ID: id, Role: role}
}

func (f *fakeStore) product(id uint) domain.Product { return f.st.products[id] }

type fakeUsers struct{ f *fakeStore }

func (r fakeUsers) Create(_ context.Context, u *domain.User) error {
	for _, e := range r.f.st.users {
		if e.Email == u.Email {
			return errDup
		}
	}
	u.ID = r.f.st.id()
	r.f.st.users[u.ID] = *u
	return nil
}

func (r fakeUsers) FindByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := r.f.st.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r fakeUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.f.st.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r fakeUsers) List(_ context.Context, q string, offset, limit int) ([]domain.User, int64, error) {
	var out []domain.User
	for _, u := range r.f.st.users {
		if q == "" || strings.Contains(u.Email, q) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (r fakeUsers) Deactivate(_ context.Context, id uint) (bool, error) {
	u, ok := r.f.st.users[id]
	if !ok || !u.IsActive {
		return false, nil
	}
	u.IsActive = false
	r.f.st.users[id] = u
	return true, nil
}

type fakeCategories struct{ f *fakeStore }

func (r fakeCategories) Create(_ context.Context, c *domain.Category) error {
	for _, e := range r.f.st.categories {
		if e.Name == c.Name {
			return errDup
		}
	}
	c.ID = r.f.st.id()
	r.f.st.categories[c.ID] = *c
	return nil
}

func (r fakeCategories) List(_ context.Context, includeInactive bool) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range r.f.st.categories {
		if includeInactive || c.IsActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeCategories) FindActive(_ context.Context, id uint) (*domain.Category, error) {
	c, ok := r.f.st.categories[id]
	if !ok || !c.IsActive {
		return nil, nil
	}
	return &c, nil
}

func (r fakeCategories) Deactivate(_ context.Context, id uint) (bool, error) {
	c, ok := r.f.st.categories[id]
	if !ok || !c.IsActive {
		return false, nil
	}
	c.IsActive = false
	r.f.st.categories[id] = c
	return true, nil
}

type fakeProducts struct{ f *fakeStore }

func (r fakeProducts) Create(_ context.Context, p *domain.Product) error {
	p.ID = r.f.st.id()
	r.f.st.products[p.ID] = *p
	return nil
}

func (r fakeProducts) list(keep func(domain.Product) bool) []domain.Product {
	var out []domain.Product
	for _, p := range r.f.st.products {
		if p.IsActive && keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r fakeProducts) ListActive(context.Context) ([]domain.Product, error) {
	return r.list(func(domain.Product) bool { return true }), nil
}

func (r fakeProducts) ListActiveByCategory(_ context.Context, categoryID uint) ([]domain.Product, error) {
	return r.list(func(p domain.Product) bool { return p.CategoryID == categoryID }), nil
}

func (r fakeProducts) FindActive(_ context.Context, id uint) (*domain.Product, error) {
	p, ok := r.f.st.products[id]
	if hook := r.f.afterProductRead; hook != nil {
		r.f.afterProductRead = nil
		hook()
	}
	if !ok || !p.IsActive {
		return nil, nil
	}
	return &p, nil
}

func (r fakeProducts) Overwrite(_ context.Context, p *domain.Product) error {
	cur := r.f.st.products[p.ID]
	domain.ProductInput{
		Name: p.Name, Description: p.Description, Price: p.Price,
		ImageURL: p.ImageURL, Stock: p.Stock, CategoryID: p.CategoryID,
	}.Apply(&cur)
	r.f.st.products[p.ID] = cur
	return nil
}

func (r fakeProducts) Deactivate(_ context.Context, id uint) error {
	p := r.f.st.products[id]
	p.IsActive = false
	r.f.st.products[id] = p
	return nil
}

func (r fakeProducts) SetRating(_ context.Context, id uint, rating float64) error {
	if r.f.failSetRating != nil {
		return r.f.failSetRating
	}
	p := r.f.st.products[id]
	p.Rating = rating
	r.f.st.products[id] = p
	return nil
}

type fakeReviews struct{ f *fakeStore }

func (r fakeReviews) Create(_ context.Context, rv *domain.Review) error {
	rv.ID = r.f.st.id()
	r.f.st.reviews[rv.ID] = *rv
	return nil
}

func (r fakeReviews) list(keep func(domain.Review) bool) []domain.Review {
	var out []domain.Review
	for _, rv := range r.f.st.reviews {
		if rv.IsActive && keep(rv) {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r fakeReviews) ListActive(context.Context) ([]domain.Review, error) {
	return r.list(func(domain.Review) bool { return true }), nil
}

func (r fakeReviews) ListActiveByProduct(_ context.Context, productID uint) ([]domain.Review, error) {
	return r.list(func(rv domain.Review) bool { return rv.ProductID == productID }), nil
}

func (r fakeReviews) FindActive(_ context.Context, id uint) (*domain.Review, error) {
	rv, ok := r.f.st.reviews[id]
	if !ok || !rv.IsActive {
		return nil, nil
	}
	return &rv, nil
}

func (r fakeReviews) FindActiveByUser(_ context.Context, userID, productID uint) (*domain.Review, error) {
	found := r.list(func(rv domain.Review) bool {
		return rv.UserID == userID && (productID == 0 || rv.ProductID == productID)
	})
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

func (r fakeReviews) Deactivate(_ context.Context, id uint) error {
	rv := r.f.st.reviews[id]
	rv.IsActive = false
	r.f.st.reviews[id] = rv
	return nil
}

func (r fakeReviews) AverageGrade(_ context.Context, productID uint) (float64, error) {
	if r.f.failAverage != nil {
		return 0, r.f.failAverage
	}
	rs := r.list(func(rv domain.Review) bool { return rv.ProductID == productID })
	if len(rs) == 0 {
		return 0, nil
	}
	sum := 0
	for _, rv := range rs {
		sum += rv.Grade
	}
	return float64(sum) / float64(len(rs)), nil
}
