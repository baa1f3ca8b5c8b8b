package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/helios/backend/internal/domain/catalog"
	"github.com/helios/backend/internal/domain/shared"
)

// Service handles the public storefront catalog
type Service struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewService creates a new catalog Service
func NewService(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository, logger *zap.Logger) *Service {
	return &Service{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// ListProducts lists purchasable products for browsing
func (s *Service) ListProducts(ctx context.Context, filter shared.Filter) ([]ProductView, error) {
	products, err := s.productRepo.FindAvailable(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toProductViews(products), nil
}

// ListByCategory lists purchasable products in a category
func (s *Service) ListByCategory(ctx context.Context, categorySlug string, filter shared.Filter) ([]ProductView, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindByCategory(ctx, category.ID, filter)
	if err != nil {
		return nil, err
	}
	return toProductViews(products), nil
}

// GetBySlug returns one product's storefront detail
func (s *Service) GetBySlug(ctx context.Context, slug string) (*ProductView, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	view := toProductView(product)
	return &view, nil
}

// ListCategories lists all browse categories
func (s *Service) ListCategories(ctx context.Context) ([]CategoryView, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]CategoryView, 0, len(categories))
	for i := range categories {
		views = append(views, CategoryView{
			CategoryID: categories[i].ID,
			Name:       categories[i].Name,
			Slug:       categories[i].Slug,
		})
	}
	return views, nil
}

// CreateCategory adds a browse category (admin)
func (s *Service) CreateCategory(ctx context.Context, name string) (*CategoryView, error) {
	category, err := catalog.NewCategory(name, catalog.Slugify(name))
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	return &CategoryView{CategoryID: category.ID, Name: category.Name, Slug: category.Slug}, nil
}

// DeleteCategory removes a browse category (admin)
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.categoryRepo.Delete(ctx, id)
}
