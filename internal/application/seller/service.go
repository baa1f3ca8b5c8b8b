package seller

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/helios/backend/internal/domain/catalog"
	"github.com/helios/backend/internal/domain/seller"
	"github.com/helios/backend/internal/domain/shared"
)

// Service handles seller lifecycle and listing management
type Service struct {
	sellerRepo  seller.SellerRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewService creates a new seller Service
func NewService(sellerRepo seller.SellerRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *Service {
	return &Service{
		sellerRepo:  sellerRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Signup opens a seller profile for a user.
// The profile starts inactive and must be approved by an admin.
func (s *Service) Signup(ctx context.Context, userID uuid.UUID, req SignupRequest) (*Profile, error) {
	exists, err := s.sellerRepo.ExistsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	vendor, err := seller.NewSeller(userID, req.BusinessName)
	if err != nil {
		return nil, err
	}
	if err := vendor.UpdateProfile(req.BusinessName, req.Description, req.Phone, req.Address, req.City, req.Country); err != nil {
		return nil, err
	}

	if err := s.sellerRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	s.logger.Info("seller signed up, awaiting approval",
		zap.String("seller_id", vendor.ID.String()),
		zap.String("business_name", vendor.BusinessName))

	return toProfile(vendor), nil
}

// GetByUserID returns the seller profile linked to a user account
func (s *Service) GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	vendor, err := s.sellerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfile(vendor), nil
}

// UpdateProfile updates the seller's business details
func (s *Service) UpdateProfile(ctx context.Context, sellerID uuid.UUID, req UpdateProfileRequest) (*Profile, error) {
	vendor, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	if err := vendor.UpdateProfile(req.BusinessName, req.Description, req.Phone, req.Address, req.City, req.Country); err != nil {
		return nil, err
	}
	if err := s.sellerRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	return toProfile(vendor), nil
}

// UpdateBankDetails updates the seller's payout account
func (s *Service) UpdateBankDetails(ctx context.Context, sellerID uuid.UUID, req UpdateBankRequest) error {
	vendor, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return err
	}

	vendor.UpdateBankDetails(req.BankName, req.BankAccountName, req.BankAccountNo, req.BankBranchCode)
	return s.sellerRepo.Save(ctx, vendor)
}

// Activate approves a seller for trading (admin)
func (s *Service) Activate(ctx context.Context, sellerID uuid.UUID) (*Profile, error) {
	vendor, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	if err := vendor.Activate(); err != nil {
		return nil, err
	}
	if err := s.sellerRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	s.logger.Info("seller activated", zap.String("seller_id", sellerID.String()))

	return toProfile(vendor), nil
}

// Deactivate suspends a seller (admin)
func (s *Service) Deactivate(ctx context.Context, sellerID uuid.UUID) (*Profile, error) {
	vendor, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	if err := vendor.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.sellerRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	s.logger.Info("seller deactivated", zap.String("seller_id", sellerID.String()))

	return toProfile(vendor), nil
}

// List lists all sellers (admin)
func (s *Service) List(ctx context.Context, filter shared.Filter) ([]Profile, error) {
	vendors, err := s.sellerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	profiles := make([]Profile, 0, len(vendors))
	for i := range vendors {
		profiles = append(profiles, *toProfile(&vendors[i]))
	}
	return profiles, nil
}

// CreateProduct lists a new product under the seller.
// Only approved sellers can list products.
func (s *Service) CreateProduct(ctx context.Context, sellerID uuid.UUID, req CreateProductRequest) (*ProductView, error) {
	vendor, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if !vendor.IsActive {
		return nil, shared.NewDomainError("SELLER_INACTIVE", "Seller must be approved before listing products")
	}

	slug, err := s.uniqueSlug(ctx, catalog.Slugify(req.Name))
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewSellerProduct(sellerID, req.Name, slug, req.Price)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description
	product.SetCategory(req.CategoryID)
	product.SetImageURL(req.ImageURL)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	view := toProductView(product)
	return &view, nil
}

// UpdateProduct edits one of the seller's listings.
// Sellers can only touch their own products.
func (s *Service) UpdateProduct(ctx context.Context, sellerID, productID uuid.UUID, req UpdateProductRequest) (*ProductView, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsOwnedBy(sellerID) {
		return nil, shared.ErrForbidden
	}

	if err := product.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := product.SetPrice(req.Price); err != nil {
		return nil, err
	}
	product.SetCategory(req.CategoryID)
	if req.ImageURL != "" {
		product.SetImageURL(req.ImageURL)
	}
	if req.IsAvailable != nil {
		product.SetAvailable(*req.IsAvailable)
	}
	if req.SalePrice != nil {
		if req.SalePrice.IsZero() {
			product.EndSale()
		} else if err := product.StartSale(*req.SalePrice); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	view := toProductView(product)
	return &view, nil
}

// DeleteProduct removes one of the seller's listings
func (s *Service) DeleteProduct(ctx context.Context, sellerID, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if !product.IsOwnedBy(sellerID) {
		return shared.ErrForbidden
	}

	return s.productRepo.Delete(ctx, productID)
}

// ListProducts lists the seller's own products
func (s *Service) ListProducts(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]ProductView, error) {
	products, err := s.productRepo.FindBySeller(ctx, sellerID, filter)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, toProductView(&products[i]))
	}
	return views, nil
}

// uniqueSlug disambiguates slugs that are already taken
func (s *Service) uniqueSlug(ctx context.Context, base string) (string, error) {
	if base == "" {
		return "", shared.NewDomainError("INVALID_NAME", "Product name yields an empty slug")
	}

	slug := base
	for i := 2; ; i++ {
		taken, err := s.productRepo.ExistsBySlug(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
