package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-be/internal/product"
	"storefront-be/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockProductLookup struct {
	mock.Mock
}

func (m *MockProductLookup) GetByID(ctx context.Context, productID string) (*product.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Get(ctx context.Context, userID uint) (Session, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(Session), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, userID uint, fn func(Session) (Session, error)) (Session, error) {
	args := m.Called(ctx, userID, fn)
	return args.Get(0).(Session), args.Error(1)
}

// --- Helpers ---

func signedIn() context.Context {
	return utils.SetUserContext(context.Background(), 7, "user@example.com", utils.RoleUser)
}

func newTestService(t *testing.T) (Service, *MockProductLookup) {
	t.Helper()
	_, client := setupTestRedis(t)
	products := new(MockProductLookup)
	return NewService(NewRepository(client, "test", time.Hour), products), products
}

func linenShirt() *product.Product {
	orig := decimal.NewFromInt(30)
	large := decimal.NewFromInt(24)
	return &product.Product{
		ID:            "p1",
		Name:          "Linen Shirt",
		Category:      "tops",
		Price:         decimal.NewFromInt(20),
		OriginalPrice: &orig,
		Images:        []string{"https://cdn.test/a.jpg"},
		Stock:         10,
		Variants: []product.Variant{
			{ID: "l", Name: "Large", Price: &large, Stock: 2},
		},
	}
}

// --- Tests ---

func TestService_AuthGate(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetSession(ctx)
	assert.ErrorIs(t, err, ErrUserNotAuthenticated)
	_, err = svc.AddItem(ctx, AddItemInput{ProductID: "p1"})
	assert.ErrorIs(t, err, ErrUserNotAuthenticated)
	_, err = svc.RemoveItem(ctx, "p1")
	assert.ErrorIs(t, err, ErrUserNotAuthenticated)
	_, err = svc.ToggleWishlist(ctx, "p1")
	assert.ErrorIs(t, err, ErrUserNotAuthenticated)
	_, err = svc.Clear(ctx)
	assert.ErrorIs(t, err, ErrUserNotAuthenticated)

	products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestService_AddItem(t *testing.T) {
	t.Run("Snapshot comes from the catalog", func(t *testing.T) {
		svc, products := newTestService(t)
		ctx := signedIn()

		products.On("GetByID", ctx, "p1").Return(linenShirt(), nil)

		_, err := svc.AddItem(ctx, AddItemInput{ProductID: "p1"})
		require.NoError(t, err)
		s, err := svc.AddItem(ctx, AddItemInput{ProductID: "p1", Quantity: 2})
		require.NoError(t, err)

		require.Equal(t, 1, s.Cart.Len())
		it, ok := s.Cart.Get("p1")
		require.True(t, ok)
		assert.Equal(t, 3, it.Quantity)
		assert.Equal(t, "Linen Shirt", it.Name)
		assert.Equal(t, "https://cdn.test/a.jpg", it.Image)
		assert.True(t, it.Price.Equal(decimal.NewFromInt(20)))
		assert.Equal(t, 10, it.Stock)
	})

	t.Run("Variant price and stock", func(t *testing.T) {
		svc, products := newTestService(t)
		ctx := signedIn()

		products.On("GetByID", ctx, "p1").Return(linenShirt(), nil)

		s, err := svc.AddItem(ctx, AddItemInput{ProductID: "p1", Variant: "l", Quantity: 2})
		require.NoError(t, err)
		it, ok := s.Cart.Get("p1:l")
		require.True(t, ok)
		assert.True(t, it.Price.Equal(decimal.NewFromInt(24)))

		_, err = svc.AddItem(ctx, AddItemInput{ProductID: "p1", Variant: "l"})
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("Unknown variant", func(t *testing.T) {
		svc, products := newTestService(t)
		ctx := signedIn()

		products.On("GetByID", ctx, "p1").Return(linenShirt(), nil)

		_, err := svc.AddItem(ctx, AddItemInput{ProductID: "p1", Variant: "xxl"})
		assert.ErrorIs(t, err, ErrVariantNotFound)
	})

	t.Run("Validation before lookup", func(t *testing.T) {
		svc, products := newTestService(t)
		ctx := signedIn()

		_, err := svc.AddItem(ctx, AddItemInput{ProductID: "  "})
		assert.ErrorIs(t, err, ErrProductIDRequired)
		_, err = svc.AddItem(ctx, AddItemInput{ProductID: "p1", Quantity: -3})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Product lookup error passes through", func(t *testing.T) {
		svc, products := newTestService(t)
		ctx := signedIn()

		products.On("GetByID", ctx, "p404").Return(nil, product.ErrProductNotFound)

		_, err := svc.AddItem(ctx, AddItemInput{ProductID: "p404"})
		assert.ErrorIs(t, err, product.ErrProductNotFound)
	})

	t.Run("Storage failure is masked", func(t *testing.T) {
		repo := new(MockRepository)
		products := new(MockProductLookup)
		svc := NewService(repo, products)
		ctx := signedIn()

		products.On("GetByID", ctx, "p1").Return(linenShirt(), nil)
		repo.On("Update", ctx, uint(7), mock.Anything).Return(Session{}, errors.New("redis: connection refused"))

		_, err := svc.AddItem(ctx, AddItemInput{ProductID: "p1"})
		assert.ErrorIs(t, err, ErrFailedSaveSession)
	})
}

func TestService_RemoveItemAndClear(t *testing.T) {
	svc, products := newTestService(t)
	ctx := signedIn()

	products.On("GetByID", ctx, "p1").Return(linenShirt(), nil)
	products.On("GetByID", ctx, "p2").Return(&product.Product{ID: "p2", Name: "Mug", Price: decimal.NewFromInt(5)}, nil)

	_, err := svc.AddItem(ctx, AddItemInput{ProductID: "p1"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, AddItemInput{ProductID: "p2"})
	require.NoError(t, err)
	_, err = svc.ToggleWishlist(ctx, "p2")
	require.NoError(t, err)

	s, err := svc.RemoveItem(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Cart.Len())

	s, err = svc.RemoveItem(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Cart.Len())

	_, err = svc.RemoveItem(ctx, "")
	assert.ErrorIs(t, err, ErrItemIDRequired)

	s, err = svc.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Cart.Len())
	assert.True(t, s.Wishlist.Contains("p2"))

	got, err := svc.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Cart.Len())
}

func TestService_ToggleWishlist(t *testing.T) {
	t.Run("Twice returns to original membership", func(t *testing.T) {
		svc, products := newTestService(t)
		ctx := signedIn()

		products.On("GetByID", ctx, "p1").Return(linenShirt(), nil).Once()

		res, err := svc.ToggleWishlist(ctx, "p1")
		require.NoError(t, err)
		assert.True(t, res.InWishlist)
		item := res.Session.Wishlist.Items()[0]
		assert.Equal(t, "Linen Shirt", item.Name)
		require.NotNil(t, item.OriginalPrice)

		res, err = svc.ToggleWishlist(ctx, "p1")
		require.NoError(t, err)
		assert.False(t, res.InWishlist)
		assert.Equal(t, 0, res.Session.Wishlist.Len())
		products.AssertExpectations(t)
	})

	t.Run("Unknown product cannot be added", func(t *testing.T) {
		svc, products := newTestService(t)
		ctx := signedIn()

		products.On("GetByID", ctx, "p404").Return(nil, product.ErrProductNotFound)

		_, err := svc.ToggleWishlist(ctx, "p404")
		assert.ErrorIs(t, err, product.ErrProductNotFound)
	})

	t.Run("Blank product id", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.ToggleWishlist(signedIn(), " ")
		assert.ErrorIs(t, err, ErrProductIDRequired)
	})
}

func TestService_GetSession_Error(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockProductLookup))
	ctx := signedIn()

	repo.On("Get", ctx, uint(7)).Return(Session{}, errors.New("redis down"))

	_, err := svc.GetSession(ctx)
	assert.ErrorIs(t, err, ErrFailedGetSession)
}
