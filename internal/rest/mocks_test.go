package rest

import (
	"context"

	"storefront-be/internal/cart"
	"storefront-be/internal/envelope"
	"storefront-be/internal/mail"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/storage"
	"storefront-be/internal/user"

	"github.com/stretchr/testify/mock"
)

type MockProductService struct{ mock.Mock }

func (m *MockProductService) FetchByID(ctx context.Context, id string) envelope.Result[product.Product] {
	return m.Called(ctx, id).Get(0).(envelope.Result[product.Product])
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*product.Product, error) {
	return m.FetchByID(ctx, id).Unwrap()
}

func (m *MockProductService) List(ctx context.Context, opts product.ListOptions) (*product.ListResult, error) {
	args := m.Called(ctx, opts)
	if res := args.Get(0); res != nil {
		return res.(*product.ListResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, input product.CreateInput) (*product.Product, error) {
	args := m.Called(ctx, input)
	if p := args.Get(0); p != nil {
		return p.(*product.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id string, input product.UpdateInput) (*product.Product, error) {
	args := m.Called(ctx, id, input)
	if p := args.Get(0); p != nil {
		return p.(*product.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) FetchByID(ctx context.Context, id string) envelope.Result[order.Order] {
	return m.Called(ctx, id).Get(0).(envelope.Result[order.Order])
}

func (m *MockOrderService) FetchByOwner(ctx context.Context, ownerID uint) envelope.Result[[]order.Order] {
	return m.Called(ctx, ownerID).Get(0).(envelope.Result[[]order.Order])
}

func (m *MockOrderService) List(ctx context.Context, opts order.ListOptions) ([]*order.Order, int, error) {
	args := m.Called(ctx, opts)
	if o := args.Get(0); o != nil {
		return o.([]*order.Order), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

type MockCartService struct{ mock.Mock }

func (m *MockCartService) GetSession(ctx context.Context) (cart.Session, error) {
	args := m.Called(ctx)
	return args.Get(0).(cart.Session), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, input cart.AddItemInput) (cart.Session, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(cart.Session), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, itemID string) (cart.Session, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(cart.Session), args.Error(1)
}

func (m *MockCartService) ToggleWishlist(ctx context.Context, productID string) (cart.ToggleResult, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(cart.ToggleResult), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context) (cart.Session, error) {
	args := m.Called(ctx)
	return args.Get(0).(cart.Session), args.Error(1)
}

type MockUserService struct{ mock.Mock }

func (m *MockUserService) Register(ctx context.Context, input user.RegisterInput) (user.AuthResult, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(user.AuthResult), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, input user.LoginInput) (user.AuthResult, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(user.AuthResult), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uint) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, limit, page int) (*user.ListResult, error) {
	args := m.Called(ctx, limit, page)
	if res := args.Get(0); res != nil {
		return res.(*user.ListResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockObjectStore struct{ mock.Mock }

func (m *MockObjectStore) Upload(ctx context.Context, file *storage.File, bucket, folder string) (string, error) {
	args := m.Called(ctx, file, bucket, folder)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) UploadMany(ctx context.Context, files []*storage.File, bucket, folder string) ([]string, error) {
	args := m.Called(ctx, files, bucket, folder)
	if urls := args.Get(0); urls != nil {
		return urls.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockObjectStore) Delete(ctx context.Context, url, bucket string) bool {
	return m.Called(ctx, url, bucket).Bool(0)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) SendTest(ctx context.Context, recipient string) mail.Result {
	return m.Called(ctx, recipient).Get(0).(mail.Result)
}
