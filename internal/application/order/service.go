package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/helios/backend/internal/domain/order"
	"github.com/helios/backend/internal/domain/shared"
)

// Notifier receives best-effort notices when an order changes status.
// Implementations must bound their own failures.
type Notifier interface {
	OrderStatusChanged(ctx context.Context, o *order.Order)
}

// Service handles order lifecycle and dashboard operations
type Service struct {
	orderRepo order.OrderRepository
	notifier  Notifier
	logger    *zap.Logger
}

// NewService creates a new order Service
func NewService(orderRepo order.OrderRepository, logger *zap.Logger) *Service {
	return &Service{orderRepo: orderRepo, logger: logger}
}

// SetNotifier enables status-change notices
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

func (s *Service) statusChanged(ctx context.Context, o *order.Order) {
	if s.notifier != nil {
		s.notifier.OrderStatusChanged(ctx, o)
	}
}

// Get returns full order detail without ownership checks (admin use)
func (s *Service) Get(ctx context.Context, orderID uuid.UUID) (*Detail, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toDetail(o), nil
}

// GetForUser returns order detail only if the order belongs to the user
func (s *Service) GetForUser(ctx context.Context, orderID, userID uuid.UUID) (*Detail, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(userID) {
		return nil, shared.ErrForbidden
	}
	return toDetail(o), nil
}

// ListForUser lists the orders a user has placed
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Summary, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return toSummaries(orders), nil
}

// List lists all orders (admin use)
func (s *Service) List(ctx context.Context, filter shared.Filter) ([]Summary, error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toSummaries(orders), nil
}

// ListUnshipped lists paid and processing orders awaiting shipment
func (s *Service) ListUnshipped(ctx context.Context, filter shared.Filter) ([]Summary, error) {
	paid, err := s.orderRepo.FindByStatus(ctx, order.OrderStatusPaid, filter)
	if err != nil {
		return nil, err
	}
	processing, err := s.orderRepo.FindByStatus(ctx, order.OrderStatusProcessing, filter)
	if err != nil {
		return nil, err
	}
	return toSummaries(append(paid, processing...)), nil
}

// ListShipped lists orders that have been shipped
func (s *Service) ListShipped(ctx context.Context, filter shared.Filter) ([]Summary, error) {
	orders, err := s.orderRepo.FindByStatus(ctx, order.OrderStatusShipped, filter)
	if err != nil {
		return nil, err
	}
	return toSummaries(orders), nil
}

// UpdateStatus transitions an order to the target status
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, target string) (*Detail, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.UpdateStatus(order.OrderStatus(target)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("order status updated",
		zap.String("order_number", o.OrderNumber),
		zap.String("status", target))
	s.statusChanged(ctx, o)

	return toDetail(o), nil
}

// Cancel cancels an order with an optional note
func (s *Service) Cancel(ctx context.Context, orderID uuid.UUID, note string) (*Detail, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.Cancel(note); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("order cancelled", zap.String("order_number", o.OrderNumber))
	s.statusChanged(ctx, o)

	return toDetail(o), nil
}

// CancelForUser cancels an order on behalf of the buyer who placed it
func (s *Service) CancelForUser(ctx context.Context, orderID, userID uuid.UUID, note string) (*Detail, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(userID) {
		return nil, shared.ErrForbidden
	}

	if err := o.Cancel(note); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	s.statusChanged(ctx, o)

	return toDetail(o), nil
}

// ListForSeller lists orders containing the seller's items, restricted
// to that seller's lines
func (s *Service) ListForSeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]SellerOrderView, error) {
	orders, err := s.orderRepo.FindBySeller(ctx, sellerID, filter)
	if err != nil {
		return nil, err
	}

	views := make([]SellerOrderView, 0, len(orders))
	for i := range orders {
		views = append(views, toSellerView(&orders[i], sellerID))
	}
	return views, nil
}

// ListUnshippedForSeller lists the seller's orders awaiting shipment
func (s *Service) ListUnshippedForSeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]SellerOrderView, error) {
	return s.listForSellerByStatus(ctx, sellerID, filter,
		order.OrderStatusPaid, order.OrderStatusProcessing)
}

// ListShippedForSeller lists the seller's orders already shipped
func (s *Service) ListShippedForSeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]SellerOrderView, error) {
	return s.listForSellerByStatus(ctx, sellerID, filter,
		order.OrderStatusShipped, order.OrderStatusDelivered)
}

func (s *Service) listForSellerByStatus(ctx context.Context, sellerID uuid.UUID, filter shared.Filter, statuses ...order.OrderStatus) ([]SellerOrderView, error) {
	orders, err := s.orderRepo.FindBySeller(ctx, sellerID, filter)
	if err != nil {
		return nil, err
	}

	wanted := make(map[order.OrderStatus]bool, len(statuses))
	for _, st := range statuses {
		wanted[st] = true
	}

	views := make([]SellerOrderView, 0, len(orders))
	for i := range orders {
		if wanted[orders[i].Status] {
			views = append(views, toSellerView(&orders[i], sellerID))
		}
	}
	return views, nil
}

// GetForSeller returns an order restricted to the seller's items,
// only if the order actually contains items belonging to the seller
func (s *Service) GetForSeller(ctx context.Context, orderID, sellerID uuid.UUID) (*SellerOrderView, error) {
	has, err := s.orderRepo.HasSellerItems(ctx, orderID, sellerID)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, shared.ErrForbidden
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	view := toSellerView(o, sellerID)
	return &view, nil
}

// MarkShippedBySeller transitions an order to shipped on behalf of a
// seller who has items on it
func (s *Service) MarkShippedBySeller(ctx context.Context, orderID, sellerID uuid.UUID) (*SellerOrderView, error) {
	has, err := s.orderRepo.HasSellerItems(ctx, orderID, sellerID)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, shared.ErrForbidden
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// Orders go through processing on the way to shipped; step through
	// it when a seller ships directly from paid
	if o.Status == order.OrderStatusPaid {
		if err := o.UpdateStatus(order.OrderStatusProcessing); err != nil {
			return nil, err
		}
	}
	if err := o.UpdateStatus(order.OrderStatusShipped); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("order marked shipped by seller",
		zap.String("order_number", o.OrderNumber),
		zap.String("seller_id", sellerID.String()))
	s.statusChanged(ctx, o)

	view := toSellerView(o, sellerID)
	return &view, nil
}

// Export renders an order listing as plain text, one order per line
func (s *Service) Export(ctx context.Context, filter shared.Filter) (string, error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("order_number\tplaced_at\tcustomer\temail\tstatus\ttotal\n")
	for i := range orders {
		o := &orders[i]
		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\t%s\t%s\n",
			o.OrderNumber,
			o.CreatedAt.Format("2006-01-02 15:04"),
			o.FullName,
			o.Email,
			o.Status,
			o.TotalAmount.StringFixed(2),
		)
	}
	return b.String(), nil
}

// ExportDetail renders one order as plain text, itemizing every line
// with its commission and the seller's net share (admin use)
func (s *Service) ExportDetail(ctx context.Context, orderID uuid.UUID) (string, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	return renderDetail(o, o.Items), nil
}

// ExportDetailForSeller renders the same export restricted to the
// seller's own line items, denied when the order carries none
func (s *Service) ExportDetailForSeller(ctx context.Context, orderID, sellerID uuid.UUID) (string, error) {
	has, err := s.orderRepo.HasSellerItems(ctx, orderID, sellerID)
	if err != nil {
		return "", err
	}
	if !has {
		return "", shared.ErrForbidden
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	return renderDetail(o, o.ItemsForSeller(sellerID)), nil
}

func renderDetail(o *order.Order, items []order.OrderItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s\nPlaced %s\nCustomer %s <%s>\nStatus %s\n\n",
		o.OrderNumber, o.CreatedAt.Format("2006-01-02 15:04"), o.FullName, o.Email, o.Status)

	b.WriteString("product\tqty\tunit_price\tline_total\tcommission\tnet\n")
	itemsTotal := decimal.Zero
	commission := decimal.Zero
	for i := range items {
		item := &items[i]
		fmt.Fprintf(&b, "%s\t%d\t%s\t%s\t%s\t%s\n",
			item.ProductName,
			item.Quantity,
			item.UnitPrice.StringFixed(2),
			item.LineTotal.StringFixed(2),
			item.CommissionAmount.StringFixed(2),
			item.SellerEarnings().StringFixed(2),
		)
		itemsTotal = itemsTotal.Add(item.LineTotal)
		commission = commission.Add(item.CommissionAmount)
	}

	fmt.Fprintf(&b, "\nItems total\t%s\nCommission\t%s\nNet to sellers\t%s\n",
		itemsTotal.StringFixed(2), commission.StringFixed(2),
		itemsTotal.Sub(commission).StringFixed(2))
	return b.String()
}

func toSummaries(orders []order.Order) []Summary {
	summaries := make([]Summary, 0, len(orders))
	for i := range orders {
		summaries = append(summaries, toSummary(&orders[i]))
	}
	return summaries
}

func toSellerView(o *order.Order, sellerID uuid.UUID) SellerOrderView {
	items := o.ItemsForSeller(sellerID)

	itemsTotal := decimal.Zero
	commission := decimal.Zero
	for _, item := range items {
		itemsTotal = itemsTotal.Add(item.LineTotal)
		commission = commission.Add(item.CommissionAmount)
	}

	return SellerOrderView{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status.String(),
		PlacedAt:    o.CreatedAt,
		Items:       toItemViews(items),
		ItemsTotal:  itemsTotal,
		Commission:  commission,
		Earnings:    itemsTotal.Sub(commission),
		Shipping:    toAddressView(o.Shipping),
	}
}
