package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/helios/backend/internal/domain/cart"
	"github.com/helios/backend/internal/domain/catalog"
	"github.com/helios/backend/internal/domain/shared"
)

// MockStore is a mock implementation of cart.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, sessionID string) (cart.Cart, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(cart.Cart), args.Error(1)
}

func (m *MockStore) Add(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (bool, error) {
	args := m.Called(ctx, sessionID, productID, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) Update(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) error {
	args := m.Called(ctx, sessionID, productID, quantity)
	return args.Error(0)
}

func (m *MockStore) Remove(ctx context.Context, sessionID string, productID uuid.UUID) error {
	args := m.Called(ctx, sessionID, productID)
	return args.Error(0)
}

func (m *MockStore) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockStore) SetShipping(ctx context.Context, sessionID string, shipping cart.StagedShipping) error {
	args := m.Called(ctx, sessionID, shipping)
	return args.Error(0)
}

func (m *MockStore) GetShipping(ctx context.Context, sessionID string) (*cart.StagedShipping, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.StagedShipping), args.Error(1)
}

func (m *MockStore) ClearShipping(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAvailable(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, sellerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func newTestProduct(t *testing.T, price float64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("Hand-Woven Basket", "hand-woven-basket", decimal.NewFromFloat(price))
	require.NoError(t, err)
	return p
}

func TestServiceAdd(t *testing.T) {
	store := new(MockStore)
	repo := new(MockProductRepository)
	svc := NewService(store, repo, zap.NewNop())

	product := newTestProduct(t, 100)
	ctx := context.Background()

	repo.On("FindByID", ctx, product.ID).Return(product, nil)
	store.On("Add", ctx, "sess-1", product.ID, 2).Return(true, nil)
	store.On("Get", ctx, "sess-1").Return(cart.Cart{Lines: []cart.Line{{ProductID: product.ID, Quantity: 2}}}, nil)

	view, err := svc.Add(ctx, "sess-1", product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, view.TotalQuantity)
	assert.Equal(t, "200", view.TotalAmount.String())

	store.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestServiceAddExistingProductIsNoOp(t *testing.T) {
	store := new(MockStore)
	repo := new(MockProductRepository)
	svc := NewService(store, repo, zap.NewNop())

	product := newTestProduct(t, 100)
	ctx := context.Background()

	repo.On("FindByID", ctx, product.ID).Return(product, nil)
	// Store reports the product was already present; existing quantity stands
	store.On("Add", ctx, "sess-1", product.ID, 5).Return(false, nil)
	store.On("Get", ctx, "sess-1").Return(cart.Cart{Lines: []cart.Line{{ProductID: product.ID, Quantity: 1}}}, nil)

	view, err := svc.Add(ctx, "sess-1", product.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, view.TotalQuantity)
}

func TestServiceAddRejectsUnavailableProduct(t *testing.T) {
	store := new(MockStore)
	repo := new(MockProductRepository)
	svc := NewService(store, repo, zap.NewNop())

	product := newTestProduct(t, 100)
	product.SetAvailable(false)
	ctx := context.Background()

	repo.On("FindByID", ctx, product.ID).Return(product, nil)

	_, err := svc.Add(ctx, "sess-1", product.ID, 1)
	assert.Error(t, err)
	store.AssertNotCalled(t, "Add")
}

func TestServiceAddRejectsNonPositiveQuantity(t *testing.T) {
	svc := NewService(new(MockStore), new(MockProductRepository), zap.NewNop())
	_, err := svc.Add(context.Background(), "sess-1", uuid.New(), 0)
	assert.Error(t, err)
}

func TestServiceUpdate(t *testing.T) {
	store := new(MockStore)
	repo := new(MockProductRepository)
	svc := NewService(store, repo, zap.NewNop())

	product := newTestProduct(t, 50)
	ctx := context.Background()

	store.On("Get", ctx, "sess-1").Return(cart.Cart{Lines: []cart.Line{{ProductID: product.ID, Quantity: 1}}}, nil)
	store.On("Update", ctx, "sess-1", product.ID, 3).Return(nil)
	repo.On("FindByID", ctx, product.ID).Return(product, nil)

	view, err := svc.Update(ctx, "sess-1", product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, view.TotalQuantity)
	assert.Equal(t, "150", view.TotalAmount.String())
}

func TestServiceUpdateMissingLine(t *testing.T) {
	store := new(MockStore)
	svc := NewService(store, new(MockProductRepository), zap.NewNop())
	ctx := context.Background()

	store.On("Get", ctx, "sess-1").Return(cart.Cart{}, nil)

	_, err := svc.Update(ctx, "sess-1", uuid.New(), 3)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	store.AssertNotCalled(t, "Update")
}

func TestServiceGetSkipsVanishedProducts(t *testing.T) {
	store := new(MockStore)
	repo := new(MockProductRepository)
	svc := NewService(store, repo, zap.NewNop())

	product := newTestProduct(t, 100)
	gone := uuid.New()
	ctx := context.Background()

	store.On("Get", ctx, "sess-1").Return(cart.Cart{Lines: []cart.Line{
		{ProductID: product.ID, Quantity: 1},
		{ProductID: gone, Quantity: 2},
	}}, nil)
	repo.On("FindByID", ctx, product.ID).Return(product, nil)
	repo.On("FindByID", ctx, gone).Return(nil, shared.ErrNotFound)

	view, err := svc.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, "100", view.TotalAmount.String())
}

func TestServiceGetAppliesSalePrice(t *testing.T) {
	store := new(MockStore)
	repo := new(MockProductRepository)
	svc := NewService(store, repo, zap.NewNop())

	product := newTestProduct(t, 100)
	require.NoError(t, product.StartSale(decimal.NewFromInt(75)))
	ctx := context.Background()

	store.On("Get", ctx, "sess-1").Return(cart.Cart{Lines: []cart.Line{{ProductID: product.ID, Quantity: 2}}}, nil)
	repo.On("FindByID", ctx, product.ID).Return(product, nil)

	view, err := svc.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.True(t, view.Items[0].OnSale)
	assert.Equal(t, "150", view.TotalAmount.String())
}
