package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/helios/backend/internal/domain/cart"
	"github.com/helios/backend/internal/domain/catalog"
	"github.com/helios/backend/internal/domain/finance"
	"github.com/helios/backend/internal/domain/order"
	"github.com/helios/backend/internal/domain/seller"
	"github.com/helios/backend/internal/domain/shared"
)

// Dispatcher receives the order after it has been durably written.
// Implementations must bound their own failures; checkout never fails
// because a notification could not be delivered.
type Dispatcher interface {
	OrderPlaced(ctx context.Context, o *order.Order)
}

// Service turns a session cart into a paid order.
// The order, its line items, the shipping address, and the impact fund
// allocation are written in one transaction; notifications fan out
// only after that transaction commits.
type Service struct {
	store         cart.Store
	productRepo   catalog.ProductRepository
	sellerRepo    seller.SellerRepository
	txScope       TransactionScope
	dispatcher    Dispatcher
	addressSource order.OrderRepository
	logger        *zap.Logger
}

// NewService creates a new checkout Service
func NewService(
	store cart.Store,
	productRepo catalog.ProductRepository,
	sellerRepo seller.SellerRepository,
	txScope TransactionScope,
	dispatcher Dispatcher,
	logger *zap.Logger,
) *Service {
	return &Service{
		store:       store,
		productRepo: productRepo,
		sellerRepo:  sellerRepo,
		txScope:     txScope,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// SetAddressSource enables shipping prefill from the buyer's order
// history when the session has nothing staged
func (s *Service) SetAddressSource(orderRepo order.OrderRepository) {
	s.addressSource = orderRepo
}

// SetShipping stages the delivery details in the session.
// The details are held until PlaceOrder consumes them.
func (s *Service) SetShipping(ctx context.Context, sessionID string, req ShippingRequest) error {
	contents, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if contents.IsEmpty() {
		return shared.ErrEmptyCart
	}

	return s.store.SetShipping(ctx, sessionID, cart.StagedShipping{
		FullName: req.FullName,
		Email:    req.Email,
		Address1: req.Address1,
		Address2: req.Address2,
		City:     req.City,
		Province: req.Province,
		PostCode: req.PostCode,
		Country:  req.Country,
		Phone:    req.Phone,
	})
}

// GetShipping returns the staged delivery details, nil if none staged
func (s *Service) GetShipping(ctx context.Context, sessionID string) (*cart.StagedShipping, error) {
	return s.store.GetShipping(ctx, sessionID)
}

// GetShippingForUser returns the staged delivery details. When nothing
// is staged and the buyer is authenticated, the address from their most
// recent order is offered as a prefill instead.
func (s *Service) GetShippingForUser(ctx context.Context, sessionID string, userID *uuid.UUID) (*cart.StagedShipping, error) {
	staged, err := s.store.GetShipping(ctx, sessionID)
	if err != nil || staged != nil {
		return staged, err
	}
	if userID == nil || s.addressSource == nil {
		return nil, nil
	}

	filter := shared.NewFilter()
	filter.PageSize = 1
	orders, err := s.addressSource.FindByUser(ctx, *userID, filter)
	if err != nil || len(orders) == 0 {
		return nil, err
	}

	last := &orders[0]
	prior, err := s.addressSource.FindByID(ctx, last.ID)
	if err != nil {
		return nil, err
	}
	if prior.Shipping == nil {
		return nil, nil
	}

	return &cart.StagedShipping{
		FullName: prior.FullName,
		Email:    prior.Email,
		Address1: prior.Shipping.Address1,
		Address2: prior.Shipping.Address2,
		City:     prior.Shipping.City,
		Province: prior.Shipping.Province,
		PostCode: prior.Shipping.PostCode,
		Country:  prior.Shipping.Country,
		Phone:    prior.Shipping.Phone,
	}, nil
}

// PlaceOrder converts the session cart into a paid order.
// Cart lines whose product has vanished or become unavailable are
// dropped; if nothing purchasable remains the checkout fails.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, userID *uuid.UUID) (*Result, error) {
	contents, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if contents.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}

	shipping, err := s.store.GetShipping(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if shipping == nil {
		return nil, shared.NewDomainError("MISSING_SHIPPING", "Shipping details must be provided before checkout")
	}

	items, err := s.buildItems(ctx, contents)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, shared.ErrEmptyCart
	}

	addr, err := order.NewShippingAddress(shipping.Address1, shipping.City, shipping.Country)
	if err != nil {
		return nil, err
	}
	addr.Address2 = shipping.Address2
	addr.Province = shipping.Province
	addr.PostCode = shipping.PostCode
	addr.Phone = shipping.Phone

	var placed *order.Order
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		seq, err := repos.OrderRepo().NextSequence(ctx)
		if err != nil {
			return err
		}

		o, err := order.NewOrder(
			order.GenerateOrderNumber(time.Now().Year(), seq),
			userID, shipping.Email, shipping.FullName,
		)
		if err != nil {
			return err
		}

		impactTotal := decimal.Zero
		for _, item := range items {
			if err := o.AddItem(item); err != nil {
				return err
			}
			impactTotal = impactTotal.Add(item.ImpactContribution())
		}

		o.SetShippingAddress(addr)

		if err := o.MarkPaid(); err != nil {
			return err
		}

		if err := repos.OrderRepo().Save(ctx, o); err != nil {
			return err
		}

		if impactTotal.IsPositive() {
			entry, err := finance.NewCommissionEntry(o.ID, userID, impactTotal,
				fmt.Sprintf("Commission allocation for order %s", o.OrderNumber))
			if err != nil {
				return err
			}
			if err := repos.ImpactFundRepo().Save(ctx, entry); err != nil {
				return err
			}
		}

		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The order is durable; session cleanup and fan-out failures must
	// not surface to the buyer
	if err := s.store.Clear(ctx, sessionID); err != nil {
		s.logger.Warn("failed to clear cart after checkout",
			zap.String("session_id", sessionID), zap.Error(err))
	}
	if err := s.store.ClearShipping(ctx, sessionID); err != nil {
		s.logger.Warn("failed to clear staged shipping after checkout",
			zap.String("session_id", sessionID), zap.Error(err))
	}

	s.dispatcher.OrderPlaced(ctx, placed)

	return toResult(placed), nil
}

// buildItems resolves cart lines against the live catalog and freezes
// prices, commission, and the seller snapshot for each surviving line
func (s *Service) buildItems(ctx context.Context, contents cart.Cart) ([]*order.OrderItem, error) {
	var items []*order.OrderItem
	for _, line := range contents.Lines {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			s.logger.Warn("dropping cart line at checkout, product unresolvable",
				zap.String("product_id", line.ProductID.String()), zap.Error(err))
			continue
		}
		if !product.IsAvailable {
			s.logger.Warn("dropping cart line at checkout, product unavailable",
				zap.String("product_id", product.ID.String()))
			continue
		}

		snapshot, err := s.sellerSnapshot(ctx, product)
		if err != nil {
			return nil, err
		}

		item, err := order.NewOrderItem(product.ID, product.Name, line.Quantity, product.EffectivePrice(), snapshot)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// sellerSnapshot freezes the selling vendor for a line item.
// House-listed products carry an empty snapshot.
func (s *Service) sellerSnapshot(ctx context.Context, product *catalog.Product) (order.SellerSnapshot, error) {
	if product.SellerID == nil {
		return order.SellerSnapshot{}, nil
	}

	vendor, err := s.sellerRepo.FindByID(ctx, *product.SellerID)
	if err != nil {
		return order.SellerSnapshot{}, fmt.Errorf("resolving seller for product %s: %w", product.ID, err)
	}

	return order.SellerSnapshot{
		SellerID:     &vendor.ID,
		BusinessName: vendor.BusinessName,
	}, nil
}

func toResult(o *order.Order) *Result {
	result := &Result{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status.String(),
		TotalAmount: o.TotalAmount,
		PlacedAt:    o.CreatedAt,
	}

	impact := decimal.Zero
	for _, item := range o.Items {
		impact = impact.Add(item.ImpactContribution())
		result.Items = append(result.Items, PlacedItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		})
	}
	result.ImpactAmount = impact

	return result
}
