package product

import (
	"context"
	"errors"
	"testing"

	"storefront-be/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	p1   = "6f1c2a4e-3b7d-4c5e-9a21-0d8e4f6b7c11"
	p404 = "0b9a8c7d-6e5f-4a3b-8c2d-1e0f9a8b7c6d"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetProductByID(ctx context.Context, opts GetProductOptions) (*Product, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) GetList(ctx context.Context, opts ListOptions) ([]*Product, int, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Product), args.Int(1), args.Error(2)
}

func (m *MockRepository) Create(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Delete(ctx context.Context, url, bucket string) bool {
	args := m.Called(ctx, url, bucket)
	return args.Bool(0)
}

// --- Helpers ---

func adminCtx() context.Context {
	return utils.SetUserContext(context.Background(), 1, "admin@example.com", utils.RoleAdmin)
}

func shopperCtx() context.Context {
	return utils.SetUserContext(context.Background(), 2, "user@example.com", utils.RoleUser)
}

func sampleProduct() *Product {
	return &Product{
		ID:       p1,
		Name:     "Linen Shirt",
		Slug:     "linen-shirt",
		Category: "tops",
		Price:    decimal.NewFromInt(20),
		Images:   []string{"https://cdn.test/products/a.jpg", "https://cdn.test/products/b.jpg"},
		Stock:    5,
		Status:   utils.ProductStatusActive,
	}
}

// --- Tests ---

func TestService_FetchByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil, "products")
		ctx := context.Background()

		repo.On("GetProductByID", ctx, GetProductOptions{ProductID: p1, OnlyActive: true}).
			Return(sampleProduct(), nil)

		res := svc.FetchByID(ctx, p1)
		assert.True(t, res.Success)
		require.NotNil(t, res.Data)
		assert.Equal(t, "Linen Shirt", res.Data.Name)
		assert.Empty(t, res.Error)
	})

	t.Run("Admin sees disabled products", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil, "products")
		ctx := adminCtx()

		repo.On("GetProductByID", ctx, GetProductOptions{ProductID: p1}).
			Return(sampleProduct(), nil)

		assert.True(t, svc.FetchByID(ctx, p1).Success)
		repo.AssertExpectations(t)
	})

	t.Run("Error - Blank ID makes no query", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil, "products")

		res := svc.FetchByID(context.Background(), "  ")
		assert.False(t, res.Success)
		assert.Nil(t, res.Data)
		assert.Equal(t, ErrProductIDRequired.Error(), res.Error)
		repo.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything)
	})

	t.Run("Error - Malformed ID makes no query", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil, "products")

		for _, id := range []string{"not-a-uuid", "p1", "6f1c2a4e-3b7d-4c5e-9a21"} {
			res := svc.FetchByID(context.Background(), id)
			assert.False(t, res.Success, id)
			assert.Equal(t, "invalid product id", res.Error, id)
			assert.ErrorIs(t, res.Err, ErrInvalidProductID, id)
		}
		repo.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything)
	})

	t.Run("Error - Not Found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil, "products")

		repo.On("GetProductByID", mock.Anything, mock.Anything).Return(nil, ErrProductNotFound)

		res := svc.FetchByID(context.Background(), p404)
		assert.False(t, res.Success)
		assert.Equal(t, "product not found", res.Error)
		assert.ErrorIs(t, res.Err, ErrProductNotFound)
	})

	t.Run("Error - Repository failure is masked", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil, "products")

		repo.On("GetProductByID", mock.Anything, mock.Anything).Return(nil, errors.New("conn reset"))

		res := svc.FetchByID(context.Background(), p1)
		assert.False(t, res.Success)
		assert.Equal(t, ErrFailedGetProduct.Error(), res.Error)
	})
}

func TestService_InvalidIDNeverReachesRepository(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil, "products")
	name := "Renamed"

	_, err := svc.Update(adminCtx(), "bogus", UpdateInput{Name: &name})
	assert.ErrorIs(t, err, ErrInvalidProductID)

	assert.ErrorIs(t, svc.Delete(adminCtx(), "bogus"), ErrInvalidProductID)

	repo.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_GetByID(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil, "products")

	repo.On("GetProductByID", mock.Anything, mock.Anything).Return(nil, ErrProductNotFound)

	p, err := svc.GetByID(context.Background(), p1)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestService_List(t *testing.T) {
	t.Run("Success normalizes paging and hides disabled for shoppers", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil, "products")
		ctx := shopperCtx()

		expected := ListOptions{Search: "shirt", Limit: 100, Page: 1}
		repo.On("GetList", ctx, expected).Return([]*Product{sampleProduct()}, 1, nil)

		res, err := svc.List(ctx, ListOptions{Search: " shirt ", Limit: 500, IncludeDisabled: true})
		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalCount)
		assert.Equal(t, 100, res.Limit)
		assert.Equal(t, 1, res.Page)
		assert.Len(t, res.Items, 1)
	})

	t.Run("Admin may include disabled", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil, "products")
		ctx := adminCtx()

		repo.On("GetList", ctx, ListOptions{IncludeDisabled: true, Limit: 20, Page: 1}).
			Return([]*Product{}, 0, nil)

		_, err := svc.List(ctx, ListOptions{IncludeDisabled: true})
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Error - Repository", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil, "products")

		repo.On("GetList", mock.Anything, mock.Anything).Return(nil, 0, errors.New("boom"))

		_, err := svc.List(context.Background(), ListOptions{})
		assert.ErrorIs(t, err, ErrFailedListProducts)
	})
}

func TestService_Create(t *testing.T) {
	input := CreateInput{
		Name:     "  Linen Shirt ",
		Category: "tops",
		Price:    decimal.NewFromInt(20),
		Stock:    3,
	}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil, "products")
		ctx := adminCtx()

		repo.On("Create", ctx, mock.MatchedBy(func(p *Product) bool {
			return p.Name == "Linen Shirt" && p.Slug == "linen-shirt" && p.Status == utils.ProductStatusActive
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*Product).ID = p1
		}).Return(nil)

		p, err := svc.Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, p1, p.ID)
	})

	t.Run("Error - Forbidden for shoppers", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil, "products")

		_, err := svc.Create(shopperCtx(), input)
		assert.ErrorIs(t, err, ErrForbidden)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error - Negative price", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil, "products")

		bad := input
		bad.Price = decimal.NewFromInt(-1)
		_, err := svc.Create(adminCtx(), bad)
		assert.ErrorIs(t, err, ErrNegativePrice)
	})

	t.Run("Error - Invalid status", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil, "products")

		bad := input
		bad.Status = "archived"
		_, err := svc.Create(adminCtx(), bad)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("Error - Repository", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil, "products")

		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("dup"))

		_, err := svc.Create(adminCtx(), input)
		assert.ErrorIs(t, err, ErrFailedSaveProduct)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("Success removes dropped images", func(t *testing.T) {
		repo := new(MockRepository)
		images := new(MockImageStore)
		svc := NewService(repo, images, "products")
		ctx := adminCtx()

		kept := []string{"https://cdn.test/products/a.jpg"}
		name := "Heavy Linen Shirt"

		repo.On("GetProductByID", ctx, GetProductOptions{ProductID: p1}).Return(sampleProduct(), nil)
		repo.On("Update", ctx, mock.MatchedBy(func(p *Product) bool {
			return p.Slug == "heavy-linen-shirt" && len(p.Images) == 1
		})).Return(nil)
		images.On("Delete", ctx, "https://cdn.test/products/b.jpg", "products").Return(true)

		p, err := svc.Update(ctx, p1, UpdateInput{Name: &name, Images: &kept})
		require.NoError(t, err)
		assert.Equal(t, name, p.Name)
		images.AssertExpectations(t)
	})

	t.Run("Error - No fields", func(t *testing.T) {
		svc := NewService(new(MockRepository), nil, "products")

		_, err := svc.Update(adminCtx(), p1, UpdateInput{})
		assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
	})

	t.Run("Error - Not Found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil, "products")

		repo.On("GetProductByID", mock.Anything, mock.Anything).Return(nil, ErrProductNotFound)

		stock := 1
		_, err := svc.Update(adminCtx(), p1, UpdateInput{Stock: &stock})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("Error - Negative stock", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil, "products")

		repo.On("GetProductByID", mock.Anything, mock.Anything).Return(sampleProduct(), nil)

		stock := -2
		_, err := svc.Update(adminCtx(), p1, UpdateInput{Stock: &stock})
		assert.ErrorIs(t, err, ErrNegativeStock)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("Success deletes every image", func(t *testing.T) {
		repo := new(MockRepository)
		images := new(MockImageStore)
		svc := NewService(repo, images, "products")
		ctx := adminCtx()

		repo.On("GetProductByID", ctx, GetProductOptions{ProductID: p1}).Return(sampleProduct(), nil)
		repo.On("Delete", ctx, p1).Return(nil)
		images.On("Delete", ctx, mock.Anything, "products").Return(false).Twice()

		assert.NoError(t, svc.Delete(ctx, p1))
		images.AssertNumberOfCalls(t, "Delete", 2)
	})

	t.Run("Error - Forbidden", func(t *testing.T) {
		svc := NewService(new(MockRepository), nil, "products")
		assert.ErrorIs(t, svc.Delete(context.Background(), p1), ErrForbidden)
	})

	t.Run("Error - Repository", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil, "products")

		repo.On("GetProductByID", mock.Anything, mock.Anything).Return(sampleProduct(), nil)
		repo.On("Delete", mock.Anything, p1).Return(errors.New("fk violation"))

		assert.ErrorIs(t, svc.Delete(adminCtx(), p1), ErrFailedDeleteProduct)
	})
}
