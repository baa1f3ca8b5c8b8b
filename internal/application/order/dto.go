package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/helios/backend/internal/domain/order"
)

// ItemView is one order line as shown in order detail
type ItemView struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	SellerName  string          `json:"seller_name,omitempty"`
}

// AddressView is the delivery address on an order
type AddressView struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city"`
	Province string `json:"province,omitempty"`
	PostCode string `json:"post_code,omitempty"`
	Country  string `json:"country"`
	Phone    string `json:"phone,omitempty"`
}

// Summary is a single row in an order listing
type Summary struct {
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	FullName    string          `json:"full_name"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PlacedAt    time.Time       `json:"placed_at"`
}

// Detail is a full order view
type Detail struct {
	Summary
	Email            string       `json:"email"`
	CommissionTotal  decimal.Decimal `json:"commission_total"`
	CancellationNote string       `json:"cancellation_note,omitempty"`
	PaidAt           *time.Time   `json:"paid_at,omitempty"`
	ShippedAt        *time.Time   `json:"shipped_at,omitempty"`
	DeliveredAt      *time.Time   `json:"delivered_at,omitempty"`
	CancelledAt      *time.Time   `json:"cancelled_at,omitempty"`
	Items            []ItemView   `json:"items"`
	Shipping         *AddressView `json:"shipping,omitempty"`
}

// SellerOrderView is an order restricted to one seller's line items,
// with that seller's earnings after commission
type SellerOrderView struct {
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	PlacedAt    time.Time       `json:"placed_at"`
	Items       []ItemView      `json:"items"`
	ItemsTotal  decimal.Decimal `json:"items_total"`
	Commission  decimal.Decimal `json:"commission"`
	Earnings    decimal.Decimal `json:"earnings"`
	Shipping    *AddressView    `json:"shipping,omitempty"`
}

// UpdateStatusRequest asks for an order status transition
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CancelRequest cancels an order with an optional note
type CancelRequest struct {
	Note string `json:"note" binding:"max=500"`
}

func toSummary(o *order.Order) Summary {
	return Summary{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		FullName:    o.FullName,
		Status:      o.Status.String(),
		TotalAmount: o.TotalAmount,
		PlacedAt:    o.CreatedAt,
	}
}

func toItemViews(items []order.OrderItem) []ItemView {
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, ItemView{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
			SellerName:  item.Seller.BusinessName,
		})
	}
	return views
}

func toAddressView(addr *order.ShippingAddress) *AddressView {
	if addr == nil {
		return nil
	}
	return &AddressView{
		Address1: addr.Address1,
		Address2: addr.Address2,
		City:     addr.City,
		Province: addr.Province,
		PostCode: addr.PostCode,
		Country:  addr.Country,
		Phone:    addr.Phone,
	}
}

func toDetail(o *order.Order) *Detail {
	return &Detail{
		Summary:          toSummary(o),
		Email:            o.Email,
		CommissionTotal:  o.CommissionTotal,
		CancellationNote: o.CancellationNote,
		PaidAt:           o.PaidAt,
		ShippedAt:        o.ShippedAt,
		DeliveredAt:      o.DeliveredAt,
		CancelledAt:      o.CancelledAt,
		Items:            toItemViews(o.Items),
		Shipping:         toAddressView(o.Shipping),
	}
}
