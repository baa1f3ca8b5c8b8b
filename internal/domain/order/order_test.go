package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     OrderStatus
		to       OrderStatus
		canTrans bool
	}{
		{"pending to paid", OrderStatusPending, OrderStatusPaid, true},
		{"paid to processing", OrderStatusPaid, OrderStatusProcessing, true},
		{"processing to shipped", OrderStatusProcessing, OrderStatusShipped, true},
		{"shipped to delivered", OrderStatusShipped, OrderStatusDelivered, true},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"shipped to cancelled", OrderStatusShipped, OrderStatusCancelled, true},
		{"pending to processing skips paid", OrderStatusPending, OrderStatusProcessing, false},
		{"shipped back to processing", OrderStatusShipped, OrderStatusProcessing, false},
		{"delivered to shipped", OrderStatusDelivered, OrderStatusShipped, false},
		{"delivered to cancelled", OrderStatusDelivered, OrderStatusCancelled, false},
		{"cancelled to paid", OrderStatusCancelled, OrderStatusPaid, false},
		{"paid back to pending", OrderStatusPaid, OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	userID := uuid.New()
	o, err := NewOrder("ORD-2026-00001", &userID, "buyer@example.com", "Thandiwe Mwila")
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	o := newTestOrder(t)
	assert.Equal(t, OrderStatusPending, o.Status)
	assert.True(t, o.TotalAmount.IsZero())
	assert.Nil(t, o.PaidAt)

	_, err := NewOrder("", nil, "buyer@example.com", "Thandiwe")
	assert.Error(t, err)
	_, err = NewOrder("ORD-2026-00002", nil, "", "Thandiwe")
	assert.Error(t, err)
}

func TestGenerateOrderNumber(t *testing.T) {
	assert.Equal(t, "ORD-2026-00042", GenerateOrderNumber(2026, 42))
}

func TestNewOrderItemComputesCommission(t *testing.T) {
	sellerID := uuid.New()
	snapshot := SellerSnapshot{SellerID: &sellerID, BusinessName: "Lusaka Crafts Co"}

	// 2 x 100.00 = 200.00; commission 15% = 30.00; impact 10% of that = 3.00
	item, err := NewOrderItem(uuid.New(), "Hand-Woven Basket", 2, decimal.NewFromInt(100), snapshot)
	require.NoError(t, err)
	assert.Equal(t, "200", item.LineTotal.String())
	assert.Equal(t, "30", item.CommissionAmount.String())
	assert.Equal(t, "3", item.ImpactContribution().String())
	assert.Equal(t, "170", item.SellerEarnings().String())
}

func TestNewOrderItemRoundsCommission(t *testing.T) {
	// 1 x 199.99; 15% = 29.9985 which must round to 30.00
	item, err := NewOrderItem(uuid.New(), "Chitenge Tote", 1, decimal.NewFromFloat(199.99), SellerSnapshot{})
	require.NoError(t, err)
	assert.Equal(t, "30", item.CommissionAmount.String())
}

func TestNewOrderItemValidation(t *testing.T) {
	_, err := NewOrderItem(uuid.Nil, "Basket", 1, decimal.NewFromInt(10), SellerSnapshot{})
	assert.Error(t, err)

	_, err = NewOrderItem(uuid.New(), "", 1, decimal.NewFromInt(10), SellerSnapshot{})
	assert.Error(t, err)

	_, err = NewOrderItem(uuid.New(), "Basket", 0, decimal.NewFromInt(10), SellerSnapshot{})
	assert.Error(t, err)

	_, err = NewOrderItem(uuid.New(), "Basket", 1, decimal.NewFromInt(-10), SellerSnapshot{})
	assert.Error(t, err)
}

func TestOrderAddItemRollsUpTotals(t *testing.T) {
	o := newTestOrder(t)

	item1, err := NewOrderItem(uuid.New(), "Basket", 2, decimal.NewFromInt(100), SellerSnapshot{})
	require.NoError(t, err)
	item2, err := NewOrderItem(uuid.New(), "Tote", 1, decimal.NewFromInt(80), SellerSnapshot{})
	require.NoError(t, err)

	require.NoError(t, o.AddItem(item1))
	require.NoError(t, o.AddItem(item2))

	assert.Equal(t, "280", o.TotalAmount.String())
	assert.Equal(t, "42", o.CommissionTotal.String())
	assert.Len(t, o.Items, 2)
	assert.Equal(t, o.ID, o.Items[0].OrderID)
}

func TestOrderAddItemRejectedAfterPayment(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.MarkPaid())

	item, err := NewOrderItem(uuid.New(), "Basket", 1, decimal.NewFromInt(10), SellerSnapshot{})
	require.NoError(t, err)
	assert.Error(t, o.AddItem(item))
}

func TestUpdateStatusStampsTimestampsOnce(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.UpdateStatus(OrderStatusPaid))
	require.NotNil(t, o.PaidAt)
	firstPaidAt := *o.PaidAt

	require.NoError(t, o.UpdateStatus(OrderStatusProcessing))
	require.NoError(t, o.UpdateStatus(OrderStatusShipped))
	require.NotNil(t, o.ShippedAt)
	require.NoError(t, o.UpdateStatus(OrderStatusDelivered))
	require.NotNil(t, o.DeliveredAt)

	assert.Equal(t, firstPaidAt, *o.PaidAt, "paid timestamp must not be rewritten by later transitions")
}

func TestUpdateStatusRejectsInvalidTransitions(t *testing.T) {
	o := newTestOrder(t)

	assert.Error(t, o.UpdateStatus(OrderStatusShipped))
	assert.Error(t, o.UpdateStatus("bogus"))

	require.NoError(t, o.UpdateStatus(OrderStatusPaid))
	assert.Error(t, o.UpdateStatus(OrderStatusPaid), "self transition must be rejected")
}

func TestOrderCancel(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.MarkPaid())

	require.NoError(t, o.Cancel("customer request"))
	assert.Equal(t, OrderStatusCancelled, o.Status)
	assert.Equal(t, "customer request", o.CancellationNote)
	require.NotNil(t, o.CancelledAt)

	assert.Error(t, o.Cancel("again"), "cancelling a cancelled order must fail")
}

func TestItemsForSeller(t *testing.T) {
	o := newTestOrder(t)
	sellerA := uuid.New()
	sellerB := uuid.New()

	itemA, err := NewOrderItem(uuid.New(), "Basket", 1, decimal.NewFromInt(100),
		SellerSnapshot{SellerID: &sellerA, BusinessName: "A"})
	require.NoError(t, err)
	itemB, err := NewOrderItem(uuid.New(), "Tote", 1, decimal.NewFromInt(80),
		SellerSnapshot{SellerID: &sellerB, BusinessName: "B"})
	require.NoError(t, err)
	house, err := NewOrderItem(uuid.New(), "Sticker", 1, decimal.NewFromInt(5), SellerSnapshot{})
	require.NoError(t, err)

	require.NoError(t, o.AddItem(itemA))
	require.NoError(t, o.AddItem(itemB))
	require.NoError(t, o.AddItem(house))

	got := o.ItemsForSeller(sellerA)
	require.Len(t, got, 1)
	assert.Equal(t, "Basket", got[0].ProductName)
}

func TestNewShippingAddress(t *testing.T) {
	addr, err := NewShippingAddress("12 Cairo Rd", "Lusaka", "Zambia")
	require.NoError(t, err)
	assert.Equal(t, "Lusaka", addr.City)

	_, err = NewShippingAddress("", "Lusaka", "Zambia")
	assert.Error(t, err)
	_, err = NewShippingAddress("12 Cairo Rd", "", "Zambia")
	assert.Error(t, err)
	_, err = NewShippingAddress("12 Cairo Rd", "Lusaka", "")
	assert.Error(t, err)
}
