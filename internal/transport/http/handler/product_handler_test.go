package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-gin-gorm-shop/internal/domain"
	resp "go-gin-gorm-shop/internal/transport/http/response"
)

type mockProductService struct{ mock.Mock }

func (m *mockProductService) Create(ctx context.Context, caller domain.Caller, in domain.ProductInput) (*domain.Product, error) {
	args := m.Called(ctx, caller, in)
	p, _ := args.Get(0).(*domain.Product)
	return p, args.Error(1)
}

func (m *mockProductService) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func (m *mockProductService) ListByCategory(ctx context.Context, categoryID uint) ([]domain.Product, error) {
	args := m.Called(ctx, categoryID)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func (m *mockProductService) Get(ctx context.Context, id uint) (*domain.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Product)
	return p, args.Error(1)
}

func (m *mockProductService) Update(ctx context.Context, caller domain.Caller, id uint, in domain.ProductInput) (*domain.Product, error) {
	args := m.Called(ctx, caller, id, in)
	p, _ := args.Get(0).(*domain.Product)
	return p, args.Error(1)
}

func (m *mockProductService) SoftDelete(ctx context.Context, caller domain.Caller, id uint) error {
	return m.Called(ctx, caller, id).Error(0)
}

const lampJSON = `{"name":"Lamp","price":"19.99","stock":3,"category_id":2}`

func TestCreateProductAsSeller(t *testing.T) {
	svc := new(mockProductService)
	r := newAPI(NewProductHandler(svc, nil))
	seller := domain.Caller{ID: 7, Role: domain.RoleSeller}

	svc.On("Create", mock.Anything, seller, mock.MatchedBy(func(in domain.ProductInput) bool {
		return in.Name == "Lamp" && in.Price.Equal(decimal.RequireFromString("19.99")) && in.CategoryID == 2
	})).Return(&domain.Product{ID: 1, Name: "Lamp", SellerID: 7, CategoryID: 2, IsActive: true}, nil).Once()

	w, body := call(r, http.MethodPost, "/api/v1/products/", lampJSON, tokenFor(t, 7, domain.RoleSeller))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, resp.CodeOK, body.Code)
	data := dataMap(t, body)
	assert.EqualValues(t, 7, data["seller_id"])
	assert.EqualValues(t, 0, data["rating"])
	svc.AssertExpectations(t)
}

func TestCreateProductRejectsNonSellersAndAnonymous(t *testing.T) {
	svc := new(mockProductService)
	r := newAPI(NewProductHandler(svc, nil))

	w, _ := call(r, http.MethodPost, "/api/v1/products/", lampJSON, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := call(r, http.MethodPost, "/api/v1/products/", lampJSON, tokenFor(t, 3, domain.RoleBuyer))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, resp.CodeForbidden, body.Code)

	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateProductValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"price":"1.00","stock":1,"category_id":1}`},
		{"zero price", `{"name":"a","price":"0","stock":1,"category_id":1}`},
		{"three decimals", `{"name":"a","price":"1.005","stock":1,"category_id":1}`},
		{"price overflow", `{"name":"a","price":"100000000","stock":1,"category_id":1}`},
		{"negative stock", `{"name":"a","price":"1","stock":-1,"category_id":1}`},
		{"missing category", `{"name":"a","price":"1","stock":1}`},
		{"malformed", `{"name":`},
	}
	svc := new(mockProductService)
	r := newAPI(NewProductHandler(svc, nil))
	tok := tokenFor(t, 7, domain.RoleSeller)

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := call(r, http.MethodPost, "/api/v1/products/", tc.body, tok)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, resp.CodeBadRequest, body.Code)
		})
	}
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductReadsArePublic(t *testing.T) {
	svc := new(mockProductService)
	r := newAPI(NewProductHandler(svc, nil))

	svc.On("List", mock.Anything).Return(nil, nil).Once()
	svc.On("ListByCategory", mock.Anything, uint(4)).Return([]domain.Product{{ID: 9, CategoryID: 4}}, nil).Once()
	svc.On("Get", mock.Anything, uint(9)).Return(&domain.Product{ID: 9, Name: "Mug"}, nil).Once()

	w, body := call(r, http.MethodGet, "/api/v1/products/", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{}, body.Data)

	w, body = call(r, http.MethodGet, "/api/v1/products/category/4", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body.Data, 1)

	w, body = call(r, http.MethodGet, "/api/v1/products/9", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Mug", dataMap(t, body)["name"])

	svc.AssertExpectations(t)
}

func TestProductErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not found", domain.NotFound("Product not found"), http.StatusNotFound, "Product not found"},
		{"inactive category", domain.InvalidReference("Category not found"), http.StatusBadRequest, "Category not found"},
		{"infra", errors.New("db down"), http.StatusInternalServerError, resp.CodeMsgMap[resp.CodeServerError]},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockProductService)
			r := newAPI(NewProductHandler(svc, nil))
			svc.On("Get", mock.Anything, uint(5)).Return(nil, tc.err).Once()

			w, body := call(r, http.MethodGet, "/api/v1/products/5", "", "")
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.status, body.Code)
			assert.Equal(t, tc.msg, body.Msg)
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	svc := new(mockProductService)
	r := newAPI(NewProductHandler(svc, nil))
	owner := domain.Caller{ID: 7, Role: domain.RoleSeller}
	other := domain.Caller{ID: 8, Role: domain.RoleSeller}

	svc.On("Update", mock.Anything, owner, uint(1), mock.Anything).
		Return(&domain.Product{ID: 1, Name: "Lamp", SellerID: 7}, nil).Once()
	svc.On("Update", mock.Anything, other, uint(1), mock.Anything).
		Return(nil, domain.Forbidden("Not authorized to update this product")).Once()

	w, _ := call(r, http.MethodPut, "/api/v1/products/1", lampJSON, tokenFor(t, 7, domain.RoleSeller))
	assert.Equal(t, http.StatusOK, w.Code)

	w, body := call(r, http.MethodPut, "/api/v1/products/1", lampJSON, tokenFor(t, 8, domain.RoleSeller))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not authorized to update this product", body.Msg)

	w, _ = call(r, http.MethodPut, "/api/v1/products/abc", lampJSON, tokenFor(t, 7, domain.RoleSeller))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertExpectations(t)
}

func TestDeleteProduct(t *testing.T) {
	svc := new(mockProductService)
	r := newAPI(NewProductHandler(svc, nil))
	owner := domain.Caller{ID: 7, Role: domain.RoleSeller}

	svc.On("SoftDelete", mock.Anything, owner, uint(3)).Return(nil).Once()
	svc.On("SoftDelete", mock.Anything, owner, uint(4)).Return(domain.NotFound("Product not found")).Once()

	w, body := call(r, http.MethodDelete, "/api/v1/products/3", "", tokenFor(t, 7, domain.RoleSeller))
	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, body)
	assert.EqualValues(t, 3, data["id"])
	assert.Equal(t, "Product marked as inactive", data["message"])

	w, _ = call(r, http.MethodDelete, "/api/v1/products/4", "", tokenFor(t, 7, domain.RoleSeller))
	assert.Equal(t, http.StatusNotFound, w.Code)

	svc.AssertExpectations(t)
}
