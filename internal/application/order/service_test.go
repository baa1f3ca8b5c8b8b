package order

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/helios/backend/internal/domain/order"
	"github.com/helios/backend/internal/domain/shared"
)

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

func paidOrder(t *testing.T, userID *uuid.UUID, sellerIDs ...uuid.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder("ORD-2026-00001", userID, "buyer@example.com", "Thandiwe Mwila")
	require.NoError(t, err)
	for _, sid := range sellerIDs {
		sid := sid
		item, err := order.NewOrderItem(uuid.New(), "Basket", 2, decimal.NewFromInt(100),
			order.SellerSnapshot{SellerID: &sid, BusinessName: "Vendor"})
		require.NoError(t, err)
		require.NoError(t, o.AddItem(item))
	}
	require.NoError(t, o.MarkPaid())
	return o
}

func TestGetForUserOwnership(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	owner := uuid.New()
	o := paidOrder(t, &owner)
	repo.On("FindByID", ctx, o.ID).Return(o, nil)

	detail, err := svc.GetForUser(ctx, o.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "ORD-2026-00001", detail.OrderNumber)

	_, err = svc.GetForUser(ctx, o.ID, uuid.New())
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestUpdateStatus(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	o := paidOrder(t, nil)
	repo.On("FindByID", ctx, o.ID).Return(o, nil)
	repo.On("Save", ctx, o).Return(nil)

	detail, err := svc.UpdateStatus(ctx, o.ID, "processing")
	require.NoError(t, err)
	assert.Equal(t, "processing", detail.Status)
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	o := paidOrder(t, nil)
	repo.On("FindByID", ctx, o.ID).Return(o, nil)

	_, err := svc.UpdateStatus(ctx, o.ID, "delivered")
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Save")
}

func TestCancelForUser(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	owner := uuid.New()
	o := paidOrder(t, &owner)
	repo.On("FindByID", ctx, o.ID).Return(o, nil)
	repo.On("Save", ctx, o).Return(nil)

	detail, err := svc.CancelForUser(ctx, o.ID, owner, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", detail.Status)
	assert.Equal(t, "changed my mind", detail.CancellationNote)
}

func TestCancelForUserForbidden(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	owner := uuid.New()
	o := paidOrder(t, &owner)
	repo.On("FindByID", ctx, o.ID).Return(o, nil)

	_, err := svc.CancelForUser(ctx, o.ID, uuid.New(), "")
	assert.ErrorIs(t, err, shared.ErrForbidden)
	repo.AssertNotCalled(t, "Save")
}

func TestListUnshippedMergesPaidAndProcessing(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()
	filter := shared.NewFilter()

	paid := paidOrder(t, nil)
	processing := paidOrder(t, nil)
	require.NoError(t, processing.UpdateStatus(order.OrderStatusProcessing))

	repo.On("FindByStatus", ctx, order.OrderStatusPaid, filter).Return([]order.Order{*paid}, nil)
	repo.On("FindByStatus", ctx, order.OrderStatusProcessing, filter).Return([]order.Order{*processing}, nil)

	summaries, err := svc.ListUnshipped(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
}

func TestGetForSeller(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	sellerID := uuid.New()
	o := paidOrder(t, nil, sellerID, uuid.New())
	repo.On("HasSellerItems", ctx, o.ID, sellerID).Return(true, nil)
	repo.On("FindByID", ctx, o.ID).Return(o, nil)

	view, err := svc.GetForSeller(ctx, o.ID, sellerID)
	require.NoError(t, err)
	// Only this seller's line, with earnings net of 15% commission
	require.Len(t, view.Items, 1)
	assert.Equal(t, "200", view.ItemsTotal.String())
	assert.Equal(t, "30", view.Commission.String())
	assert.Equal(t, "170", view.Earnings.String())
}

func TestGetForSellerForbidden(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	orderID := uuid.New()
	sellerID := uuid.New()
	repo.On("HasSellerItems", ctx, orderID, sellerID).Return(false, nil)

	_, err := svc.GetForSeller(ctx, orderID, sellerID)
	assert.ErrorIs(t, err, shared.ErrForbidden)
	repo.AssertNotCalled(t, "FindByID")
}

func TestMarkShippedBySellerFromPaid(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	sellerID := uuid.New()
	o := paidOrder(t, nil, sellerID)
	repo.On("HasSellerItems", ctx, o.ID, sellerID).Return(true, nil)
	repo.On("FindByID", ctx, o.ID).Return(o, nil)
	repo.On("Save", ctx, o).Return(nil)

	view, err := svc.MarkShippedBySeller(ctx, o.ID, sellerID)
	require.NoError(t, err)
	assert.Equal(t, "shipped", view.Status)
	require.NotNil(t, o.ShippedAt)
}

func TestListShippedForSellerFiltersByStatus(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()
	filter := shared.NewFilter()

	sellerID := uuid.New()
	unshipped := paidOrder(t, nil, sellerID)
	shipped := paidOrder(t, nil, sellerID)
	require.NoError(t, shipped.UpdateStatus(order.OrderStatusProcessing))
	require.NoError(t, shipped.UpdateStatus(order.OrderStatusShipped))

	repo.On("FindBySeller", ctx, sellerID, filter).Return([]order.Order{*unshipped, *shipped}, nil)

	views, err := svc.ListShippedForSeller(ctx, sellerID, filter)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "shipped", views[0].Status)
}

func TestExport(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()
	filter := shared.NewFilter()

	o := paidOrder(t, nil, uuid.New())
	repo.On("FindAll", ctx, filter).Return([]order.Order{*o}, nil)

	out, err := svc.Export(ctx, filter)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2, "header plus one order")
	assert.Contains(t, lines[0], "order_number")
	assert.Contains(t, lines[1], "ORD-2026-00001")
	assert.Contains(t, lines[1], "buyer@example.com")
	assert.Contains(t, lines[1], "200.00")
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) OrderStatusChanged(ctx context.Context, o *order.Order) {
	m.Called(ctx, o)
}

func TestUpdateStatusFiresNotifier(t *testing.T) {
	repo := new(MockOrderRepository)
	notifier := new(MockNotifier)
	svc := NewService(repo, zap.NewNop())
	svc.SetNotifier(notifier)
	ctx := context.Background()

	o := paidOrder(t, nil)
	repo.On("FindByID", ctx, o.ID).Return(o, nil)
	repo.On("Save", ctx, o).Return(nil)
	notifier.On("OrderStatusChanged", ctx, o).Return()

	_, err := svc.UpdateStatus(ctx, o.ID, string(order.OrderStatusProcessing))
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestUpdateStatusWithoutNotifier(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	o := paidOrder(t, nil)
	repo.On("FindByID", ctx, o.ID).Return(o, nil)
	repo.On("Save", ctx, o).Return(nil)

	// No notifier wired; the transition must still succeed
	_, err := svc.UpdateStatus(ctx, o.ID, string(order.OrderStatusProcessing))
	require.NoError(t, err)
}

func TestExportDetailItemizesCommission(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	o := paidOrder(t, nil, uuid.New())
	repo.On("FindByID", ctx, o.ID).Return(o, nil)

	out, err := svc.ExportDetail(ctx, o.ID)
	require.NoError(t, err)

	assert.Contains(t, out, "ORD-2026-00001")
	// One Basket line: 2 x 100.00 = 200.00, commission 30.00, net 170.00
	assert.Contains(t, out, "Basket\t2\t100.00\t200.00\t30.00\t170.00")
	assert.Contains(t, out, "Items total\t200.00")
	assert.Contains(t, out, "Commission\t30.00")
	assert.Contains(t, out, "Net to sellers\t170.00")
}

func TestExportDetailForSellerRestrictsItems(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	mine := uuid.New()
	other := uuid.New()
	o, err := order.NewOrder("ORD-2026-00002", nil, "buyer@example.com", "Thandiwe Mwila")
	require.NoError(t, err)
	ownItem, err := order.NewOrderItem(uuid.New(), "Stool", 1, decimal.NewFromInt(80),
		order.SellerSnapshot{SellerID: &mine, BusinessName: "Vendor"})
	require.NoError(t, err)
	otherItem, err := order.NewOrderItem(uuid.New(), "Rug", 1, decimal.NewFromInt(50),
		order.SellerSnapshot{SellerID: &other, BusinessName: "Someone Else"})
	require.NoError(t, err)
	require.NoError(t, o.AddItem(ownItem))
	require.NoError(t, o.AddItem(otherItem))
	require.NoError(t, o.MarkPaid())

	repo.On("HasSellerItems", ctx, o.ID, mine).Return(true, nil)
	repo.On("FindByID", ctx, o.ID).Return(o, nil)

	out, err := svc.ExportDetailForSeller(ctx, o.ID, mine)
	require.NoError(t, err)
	assert.Contains(t, out, "Stool")
	assert.NotContains(t, out, "Rug")
	// 80.00 line with 12.00 commission leaves 68.00 for the seller
	assert.Contains(t, out, "Items total\t80.00")
	assert.Contains(t, out, "Net to sellers\t68.00")
}

func TestExportDetailForSellerForbidden(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	orderID := uuid.New()
	sellerID := uuid.New()
	repo.On("HasSellerItems", ctx, orderID, sellerID).Return(false, nil)

	_, err := svc.ExportDetailForSeller(ctx, orderID, sellerID)
	assert.ErrorIs(t, err, shared.ErrForbidden)
	repo.AssertNotCalled(t, "FindByID")
}
