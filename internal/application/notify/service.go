package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/helios/backend/internal/domain/identity"
	"github.com/helios/backend/internal/domain/notification"
	"github.com/helios/backend/internal/domain/order"
	"github.com/helios/backend/internal/domain/seller"
)

// Mailer sends a single email message
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Service fans out notifications when an order is placed: an email to
// the buyer, an order summary with a per-seller commission breakdown
// to the marketplace admins, and an in-app notification plus email for
// every seller with items on the order. Line items that carry no
// seller snapshot are escalated in-app to every admin account.
// Each dispatch is bounded on its own; one failing recipient never
// blocks the others and never fails the checkout.
type Service struct {
	notificationRepo notification.NotificationRepository
	sellerRepo       seller.SellerRepository
	userRepo         identity.UserRepository
	mailer           Mailer
	adminEmail       string
	logger           *zap.Logger
}

// NewService creates a new notify Service
func NewService(
	notificationRepo notification.NotificationRepository,
	sellerRepo seller.SellerRepository,
	userRepo identity.UserRepository,
	mailer Mailer,
	adminEmail string,
	logger *zap.Logger,
) *Service {
	return &Service{
		notificationRepo: notificationRepo,
		sellerRepo:       sellerRepo,
		userRepo:         userRepo,
		mailer:           mailer,
		adminEmail:       adminEmail,
		logger:           logger,
	}
}

// OrderPlaced dispatches all notifications for a freshly placed order
func (s *Service) OrderPlaced(ctx context.Context, o *order.Order) {
	groups, orphans := groupBySeller(o.Items)
	admins := s.adminAccounts(ctx, o.OrderNumber)

	s.notifyBuyer(ctx, o)
	s.notifyAdmins(ctx, o, groups, admins)

	for sellerID, items := range groups {
		s.notifySeller(ctx, o, sellerID, items)
	}

	if len(orphans) > 0 {
		s.escalateSellerlessItems(ctx, o, orphans, admins)
	}
}

// OrderStatusChanged records an in-app notice for every admin account
// when an order moves through its lifecycle.
// Best-effort like the rest of the fan-out.
func (s *Service) OrderStatusChanged(ctx context.Context, o *order.Order) {
	for _, admin := range s.adminAccounts(ctx, o.OrderNumber) {
		n, err := notification.NewNotification(admin.ID,
			fmt.Sprintf("Order %s is now %s", o.OrderNumber, o.Status), o.OrderNumber)
		if err == nil {
			err = s.notificationRepo.Save(ctx, n)
		}
		if err != nil {
			s.logger.Error("admin status notification failed",
				zap.String("order_number", o.OrderNumber),
				zap.Error(err))
		}
	}
}

// adminAccounts resolves the admin users that receive marketplace
// notices. A lookup failure is logged and yields no recipients.
func (s *Service) adminAccounts(ctx context.Context, orderNumber string) []identity.User {
	admins, err := s.userRepo.FindAdmins(ctx)
	if err != nil {
		s.logger.Warn("admin account lookup failed",
			zap.String("order_number", orderNumber),
			zap.Error(err))
		return nil
	}
	return admins
}

func (s *Service) notifyBuyer(ctx context.Context, o *order.Order) {
	body := fmt.Sprintf(
		"Hi %s,\n\nThank you for your order %s. Your total is %s.\n\nWe will let you know when it ships.",
		o.FullName, o.OrderNumber, o.TotalAmount.StringFixed(2),
	)
	if err := s.mailer.Send(ctx, o.Email, "Order confirmation "+o.OrderNumber, body); err != nil {
		s.logger.Error("buyer confirmation email failed",
			zap.String("order_number", o.OrderNumber),
			zap.String("to", o.Email),
			zap.Error(err))
	}
}

// notifyAdmins emails the order summary to the configured admin
// address, falling back to every admin account's email when none is
// configured, and records one in-app notification per admin.
func (s *Service) notifyAdmins(ctx context.Context, o *order.Order, groups map[uuid.UUID][]order.OrderItem, admins []identity.User) {
	body := adminSummary(o, groups)

	recipients := []string{s.adminEmail}
	if s.adminEmail == "" {
		recipients = recipients[:0]
		for _, admin := range admins {
			recipients = append(recipients, admin.Email)
		}
	}
	for _, to := range recipients {
		if err := s.mailer.Send(ctx, to, "New order "+o.OrderNumber, body); err != nil {
			s.logger.Error("admin notification email failed",
				zap.String("order_number", o.OrderNumber),
				zap.String("to", to),
				zap.Error(err))
		}
	}

	for i := range admins {
		n, err := notification.NewNotification(admins[i].ID,
			fmt.Sprintf("New order %s for %s", o.OrderNumber, o.TotalAmount.StringFixed(2)), o.OrderNumber)
		if err == nil {
			err = s.notificationRepo.Save(ctx, n)
		}
		if err != nil {
			s.logger.Error("admin in-app notification failed",
				zap.String("order_number", o.OrderNumber),
				zap.Error(err))
		}
	}
}

// adminSummary renders the order total plus a per-seller commission
// breakdown for the admin email
func adminSummary(o *order.Order, groups map[uuid.UUID][]order.OrderItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s placed by %s (%s) for %s.\n",
		o.OrderNumber, o.FullName, o.Email, o.TotalAmount.StringFixed(2))

	for _, items := range groups {
		subtotal := decimal.Zero
		commission := decimal.Zero
		for _, item := range items {
			subtotal = subtotal.Add(item.LineTotal)
			commission = commission.Add(item.CommissionAmount)
		}
		fmt.Fprintf(&b, "%s: %s (subtotal %s, commission %s)\n",
			items[0].Seller.BusinessName, itemSummary(items),
			subtotal.StringFixed(2), commission.StringFixed(2))
	}
	return b.String()
}

// escalateSellerlessItems flags line items with no seller snapshot to
// every admin account so the missing payout linkage can be chased
func (s *Service) escalateSellerlessItems(ctx context.Context, o *order.Order, orphans []order.OrderItem, admins []identity.User) {
	if len(admins) == 0 {
		s.logger.Warn("no admin accounts to receive seller-less item escalation",
			zap.String("order_number", o.OrderNumber),
			zap.Int("item_count", len(orphans)))
		return
	}

	message := fmt.Sprintf("Order %s contains items with no seller: %s",
		o.OrderNumber, itemSummary(orphans))
	for i := range admins {
		n, err := notification.NewNotification(admins[i].ID, message, o.OrderNumber)
		if err == nil {
			err = s.notificationRepo.Save(ctx, n)
		}
		if err != nil {
			s.logger.Error("seller-less item escalation failed",
				zap.String("order_number", o.OrderNumber),
				zap.Error(err))
		}
	}
}

// notifySeller records an in-app notification and emails the seller.
// Either half failing is logged and swallowed.
func (s *Service) notifySeller(ctx context.Context, o *order.Order, sellerID uuid.UUID, items []order.OrderItem) {
	vendor, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		s.logger.Error("seller lookup failed during fan-out",
			zap.String("order_number", o.OrderNumber),
			zap.String("seller_id", sellerID.String()),
			zap.Error(err))
		return
	}

	summary := itemSummary(items)

	n, err := notification.NewNotification(vendor.UserID,
		fmt.Sprintf("You sold %s on order %s", summary, o.OrderNumber), o.OrderNumber)
	if err == nil {
		err = s.notificationRepo.Save(ctx, n)
	}
	if err != nil {
		s.logger.Error("seller in-app notification failed",
			zap.String("order_number", o.OrderNumber),
			zap.String("seller_id", sellerID.String()),
			zap.Error(err))
	}

	account, err := s.userRepo.FindByID(ctx, vendor.UserID)
	if err != nil {
		s.logger.Error("seller account lookup failed during fan-out",
			zap.String("order_number", o.OrderNumber),
			zap.String("seller_id", sellerID.String()),
			zap.Error(err))
		return
	}

	body := fmt.Sprintf(
		"Hi %s,\n\nYou have a new sale on order %s: %s.\n\nPlease prepare the items for shipment.",
		vendor.BusinessName, o.OrderNumber, summary,
	)
	if err := s.mailer.Send(ctx, account.Email, "New sale on "+o.OrderNumber, body); err != nil {
		s.logger.Error("seller email failed",
			zap.String("order_number", o.OrderNumber),
			zap.String("seller_id", sellerID.String()),
			zap.Error(err))
	}
}

// itemSummary renders line items as "2x Basket, 1x Stool"
func itemSummary(items []order.OrderItem) string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, fmt.Sprintf("%dx %s", item.Quantity, item.ProductName))
	}
	return strings.Join(names, ", ")
}

// groupBySeller buckets line items by selling vendor. Items that carry
// no seller snapshot come back separately so they can be escalated.
func groupBySeller(items []order.OrderItem) (map[uuid.UUID][]order.OrderItem, []order.OrderItem) {
	groups := make(map[uuid.UUID][]order.OrderItem)
	var orphans []order.OrderItem
	for _, item := range items {
		if item.Seller.SellerID == nil {
			orphans = append(orphans, item)
			continue
		}
		groups[*item.Seller.SellerID] = append(groups[*item.Seller.SellerID], item)
	}
	return groups, orphans
}
