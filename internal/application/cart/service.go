package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/helios/backend/internal/domain/cart"
	"github.com/helios/backend/internal/domain/catalog"
	"github.com/helios/backend/internal/domain/shared"
)

// Service handles session cart operations.
// The cart stores only product references and quantities; every view
// resolves prices against the live catalog so sale prices and price
// changes take effect immediately.
type Service struct {
	store       cart.Store
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewService creates a new cart Service
func NewService(store cart.Store, productRepo catalog.ProductRepository, logger *zap.Logger) *Service {
	return &Service{
		store:       store,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Add puts a product in the cart. Adding a product that is already in
// the cart leaves the existing quantity untouched.
func (s *Service) Add(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*View, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable {
		return nil, shared.NewDomainError("UNAVAILABLE", "Product is not available for purchase")
	}

	added, err := s.store.Add(ctx, sessionID, productID, quantity)
	if err != nil {
		return nil, err
	}
	if !added {
		s.logger.Debug("cart add skipped, product already present",
			zap.String("session_id", sessionID),
			zap.String("product_id", productID.String()))
	}

	return s.Get(ctx, sessionID)
}

// Update overwrites the quantity of a product already in the cart
func (s *Service) Update(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*View, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	contents, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if contents.Quantity(productID) == 0 {
		return nil, shared.ErrNotFound
	}

	if err := s.store.Update(ctx, sessionID, productID, quantity); err != nil {
		return nil, err
	}

	return s.Get(ctx, sessionID)
}

// Remove deletes a product from the cart
func (s *Service) Remove(ctx context.Context, sessionID string, productID uuid.UUID) (*View, error) {
	if err := s.store.Remove(ctx, sessionID, productID); err != nil {
		return nil, err
	}
	return s.Get(ctx, sessionID)
}

// Clear empties the cart
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}

// Get resolves the cart against the live catalog and returns a view
// with current effective prices. Lines whose product has vanished or
// become unavailable are skipped rather than failing the whole view.
func (s *Service) Get(ctx context.Context, sessionID string) (*View, error) {
	contents, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	view := &View{Items: []ItemView{}, TotalAmount: decimal.Zero}
	for _, line := range contents.Lines {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			s.logger.Warn("skipping cart line with unresolvable product",
				zap.String("session_id", sessionID),
				zap.String("product_id", line.ProductID.String()),
				zap.Error(err))
			continue
		}

		price := product.EffectivePrice()
		lineTotal := price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		view.Items = append(view.Items, ItemView{
			ProductID:   product.ID,
			ProductName: product.Name,
			Slug:        product.Slug,
			ImageURL:    product.ImageURL,
			UnitPrice:   price,
			Quantity:    line.Quantity,
			LineTotal:   lineTotal,
			OnSale:      product.IsSale,
		})
		view.TotalQuantity += line.Quantity
		view.TotalAmount = view.TotalAmount.Add(lineTotal)
	}

	return view, nil
}
