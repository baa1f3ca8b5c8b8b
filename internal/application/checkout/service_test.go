package checkout

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
	"github.com/helios/backend/internal/domain/finance"
	"github.com/helios/backend/internal/domain/order"
	"github.com/helios/backend/internal/domain/seller"
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

// MockSellerRepository is a mock implementation of seller.SellerRepository
type MockSellerRepository struct {
	mock.Mock
}

func (m *MockSellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*seller.Seller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*seller.Seller), args.Error(1)
}

func (m *MockSellerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*seller.Seller, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*seller.Seller), args.Error(1)
}

func (m *MockSellerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]seller.Seller, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]seller.Seller), args.Error(1)
}

func (m *MockSellerRepository) FindActive(ctx context.Context, filter shared.Filter) ([]seller.Seller, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]seller.Seller), args.Error(1)
}

func (m *MockSellerRepository) Save(ctx context.Context, s *seller.Seller) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSellerRepository) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

// MockOrderRepository is a mock implementation of order.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, status order.OrderStatus, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, sellerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) HasSellerItems(ctx context.Context, orderID, sellerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, orderID, sellerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) NextSequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockImpactFundRepository is a mock implementation of finance.ImpactFundRepository
type MockImpactFundRepository struct {
	mock.Mock
}

func (m *MockImpactFundRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ImpactFundEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ImpactFundEntry), args.Error(1)
}

func (m *MockImpactFundRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.ImpactFundEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.ImpactFundEntry), args.Error(1)
}

func (m *MockImpactFundRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]finance.ImpactFundEntry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.ImpactFundEntry), args.Error(1)
}

func (m *MockImpactFundRepository) Save(ctx context.Context, entry *finance.ImpactFundEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockImpactFundRepository) Balance(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockDispatcher is a mock implementation of Dispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) OrderPlaced(ctx context.Context, o *order.Order) {
	m.Called(ctx, o)
}

type checkoutFixture struct {
	store      *MockStore
	products   *MockProductRepository
	sellers    *MockSellerRepository
	orders     *MockOrderRepository
	impact     *MockImpactFundRepository
	dispatcher *MockDispatcher
	svc        *Service
}

func newFixture() *checkoutFixture {
	f := &checkoutFixture{
		store:      new(MockStore),
		products:   new(MockProductRepository),
		sellers:    new(MockSellerRepository),
		orders:     new(MockOrderRepository),
		impact:     new(MockImpactFundRepository),
		dispatcher: new(MockDispatcher),
	}
	f.svc = NewService(
		f.store, f.products, f.sellers,
		NewNoOpTransactionScope(f.orders, f.impact),
		f.dispatcher, zap.NewNop(),
	)
	return f
}

func stagedShipping() *cart.StagedShipping {
	return &cart.StagedShipping{
		FullName: "Thandiwe Mwila",
		Email:    "buyer@example.com",
		Address1: "12 Cairo Rd",
		City:     "Lusaka",
		Country:  "Zambia",
	}
}

func TestPlaceOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	vendor, err := seller.NewSeller(uuid.New(), "Lusaka Crafts Co")
	require.NoError(t, err)
	product, err := catalog.NewSellerProduct(vendor.ID, "Hand-Woven Basket", "hand-woven-basket", decimal.NewFromInt(100))
	require.NoError(t, err)

	f.store.On("Get", ctx, "sess-1").Return(cart.Cart{Lines: []cart.Line{{ProductID: product.ID, Quantity: 2}}}, nil)
	f.store.On("GetShipping", ctx, "sess-1").Return(stagedShipping(), nil)
	f.products.On("FindByID", ctx, product.ID).Return(product, nil)
	f.sellers.On("FindByID", ctx, vendor.ID).Return(vendor, nil)
	f.orders.On("NextSequence", ctx).Return(int64(1), nil)
	f.orders.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)
	f.impact.On("Save", ctx, mock.AnythingOfType("*finance.ImpactFundEntry")).Return(nil)
	f.store.On("Clear", ctx, "sess-1").Return(nil)
	f.store.On("ClearShipping", ctx, "sess-1").Return(nil)
	f.dispatcher.On("OrderPlaced", ctx, mock.AnythingOfType("*order.Order")).Return()

	userID := uuid.New()
	result, err := f.svc.PlaceOrder(ctx, "sess-1", &userID)
	require.NoError(t, err)

	// 2 x 100.00 = 200.00; commission 30.00; impact fund 3.00
	assert.Equal(t, "200", result.TotalAmount.String())
	assert.Equal(t, "3", result.ImpactAmount.String())
	assert.Equal(t, string(order.OrderStatusPaid), result.Status)
	require.Len(t, result.Items, 1)
	assert.Equal(t, 2, result.Items[0].Quantity)

	saved := f.orders.Calls[1].Arguments.Get(1).(*order.Order)
	require.Len(t, saved.Items, 1)
	assert.Equal(t, "30", saved.Items[0].CommissionAmount.String())
	require.NotNil(t, saved.Items[0].Seller.SellerID)
	assert.Equal(t, vendor.ID, *saved.Items[0].Seller.SellerID)
	assert.Equal(t, "Lusaka Crafts Co", saved.Items[0].Seller.BusinessName)
	require.NotNil(t, saved.PaidAt)
	require.NotNil(t, saved.Shipping)
	assert.Equal(t, "Lusaka", saved.Shipping.City)

	entry := f.impact.Calls[0].Arguments.Get(1).(*finance.ImpactFundEntry)
	assert.Equal(t, finance.ImpactEntryCommission, entry.Type)
	assert.Equal(t, "3.00", entry.Amount.StringFixed(2))
	require.NotNil(t, entry.OrderID)
	assert.Equal(t, saved.ID, *entry.OrderID)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, userID, *entry.UserID)

	f.dispatcher.AssertCalled(t, "OrderPlaced", ctx, mock.AnythingOfType("*order.Order"))
	f.store.AssertCalled(t, "Clear", ctx, "sess-1")
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.On("Get", ctx, "sess-1").Return(cart.Cart{}, nil)

	_, err := f.svc.PlaceOrder(ctx, "sess-1", nil)
	assert.ErrorIs(t, err, shared.ErrEmptyCart)
	f.orders.AssertNotCalled(t, "Save")
}

func TestPlaceOrderWithoutShipping(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.On("Get", ctx, "sess-1").Return(cart.Cart{Lines: []cart.Line{{ProductID: uuid.New(), Quantity: 1}}}, nil)
	f.store.On("GetShipping", ctx, "sess-1").Return(nil, nil)

	_, err := f.svc.PlaceOrder(ctx, "sess-1", nil)
	assert.Error(t, err)
	f.orders.AssertNotCalled(t, "Save")
}

func TestPlaceOrderDropsVanishedProducts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	product, err := catalog.NewProduct("Basket", "basket", decimal.NewFromInt(50))
	require.NoError(t, err)
	gone := uuid.New()

	f.store.On("Get", ctx, "sess-1").Return(cart.Cart{Lines: []cart.Line{
		{ProductID: gone, Quantity: 1},
		{ProductID: product.ID, Quantity: 1},
	}}, nil)
	f.store.On("GetShipping", ctx, "sess-1").Return(stagedShipping(), nil)
	f.products.On("FindByID", ctx, gone).Return(nil, shared.ErrNotFound)
	f.products.On("FindByID", ctx, product.ID).Return(product, nil)
	f.orders.On("NextSequence", ctx).Return(int64(2), nil)
	f.orders.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)
	f.impact.On("Save", ctx, mock.AnythingOfType("*finance.ImpactFundEntry")).Return(nil)
	f.store.On("Clear", ctx, "sess-1").Return(nil)
	f.store.On("ClearShipping", ctx, "sess-1").Return(nil)
	f.dispatcher.On("OrderPlaced", ctx, mock.AnythingOfType("*order.Order")).Return()

	result, err := f.svc.PlaceOrder(ctx, "sess-1", nil)
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, "50", result.TotalAmount.String())
}

func TestPlaceOrderFailsWhenNothingPurchasable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	product, err := catalog.NewProduct("Basket", "basket", decimal.NewFromInt(50))
	require.NoError(t, err)
	product.SetAvailable(false)

	f.store.On("Get", ctx, "sess-1").Return(cart.Cart{Lines: []cart.Line{{ProductID: product.ID, Quantity: 1}}}, nil)
	f.store.On("GetShipping", ctx, "sess-1").Return(stagedShipping(), nil)
	f.products.On("FindByID", ctx, product.ID).Return(product, nil)

	_, err = f.svc.PlaceOrder(ctx, "sess-1", nil)
	assert.ErrorIs(t, err, shared.ErrEmptyCart)
}

func TestPlaceOrderRollsBackOnSaveFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	product, err := catalog.NewProduct("Basket", "basket", decimal.NewFromInt(50))
	require.NoError(t, err)

	f.store.On("Get", ctx, "sess-1").Return(cart.Cart{Lines: []cart.Line{{ProductID: product.ID, Quantity: 1}}}, nil)
	f.store.On("GetShipping", ctx, "sess-1").Return(stagedShipping(), nil)
	f.products.On("FindByID", ctx, product.ID).Return(product, nil)
	f.orders.On("NextSequence", ctx).Return(int64(3), nil)
	f.orders.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(assert.AnError)

	_, err = f.svc.PlaceOrder(ctx, "sess-1", nil)
	assert.Error(t, err)
	f.dispatcher.AssertNotCalled(t, "OrderPlaced")
	f.store.AssertNotCalled(t, "Clear")
}

func TestSetShippingRequiresNonEmptyCart(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.On("Get", ctx, "sess-1").Return(cart.Cart{}, nil)

	err := f.svc.SetShipping(ctx, "sess-1", ShippingRequest{
		FullName: "Thandiwe Mwila",
		Email:    "buyer@example.com",
		Address1: "12 Cairo Rd",
		City:     "Lusaka",
		Country:  "Zambia",
	})
	assert.ErrorIs(t, err, shared.ErrEmptyCart)
}

func TestGetShippingForUserPrefersStaged(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.On("GetShipping", ctx, "sess-1").Return(stagedShipping(), nil)

	userID := uuid.New()
	got, err := f.svc.GetShippingForUser(ctx, "sess-1", &userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Thandiwe Mwila", got.FullName)
	f.orders.AssertNotCalled(t, "FindByUser")
}

func TestGetShippingForUserPrefillsFromLastOrder(t *testing.T) {
	f := newFixture()
	f.svc.SetAddressSource(f.orders)
	ctx := context.Background()

	userID := uuid.New()
	prior, err := order.NewOrder("ORD-2026-00042", &userID, "buyer@example.com", "Thandiwe Mwila")
	require.NoError(t, err)
	prior.Shipping = &order.ShippingAddress{
		OrderID:  prior.ID,
		Address1: "12 Cairo Rd",
		City:     "Lusaka",
		Country:  "Zambia",
	}

	f.store.On("GetShipping", ctx, "sess-1").Return(nil, nil)
	f.orders.On("FindByUser", ctx, userID, mock.AnythingOfType("shared.Filter")).Return([]order.Order{*prior}, nil)
	f.orders.On("FindByID", ctx, prior.ID).Return(prior, nil)

	got, err := f.svc.GetShippingForUser(ctx, "sess-1", &userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Thandiwe Mwila", got.FullName)
	assert.Equal(t, "12 Cairo Rd", got.Address1)
	assert.Equal(t, "Lusaka", got.City)
}

func TestGetShippingForUserGuestGetsNothing(t *testing.T) {
	f := newFixture()
	f.svc.SetAddressSource(f.orders)
	ctx := context.Background()

	f.store.On("GetShipping", ctx, "sess-1").Return(nil, nil)

	got, err := f.svc.GetShippingForUser(ctx, "sess-1", nil)
	require.NoError(t, err)
	assert.Nil(t, got)
	f.orders.AssertNotCalled(t, "FindByUser")
}
