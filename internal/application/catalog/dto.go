package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/helios/backend/internal/domain/catalog"
)

// ProductView is a product as shown on the storefront
type ProductView struct {
	ProductID      uuid.UUID       `json:"product_id"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	EffectivePrice decimal.Decimal `json:"effective_price"`
	OnSale         bool            `json:"on_sale"`
	ImageURL       string          `json:"image_url,omitempty"`
	CategoryID     *uuid.UUID      `json:"category_id,omitempty"`
	SellerID       *uuid.UUID      `json:"seller_id,omitempty"`
}

// CategoryView is a browse category
type CategoryView struct {
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
}

func toProductView(p *catalog.Product) ProductView {
	return ProductView{
		ProductID:      p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		Price:          p.Price,
		EffectivePrice: p.EffectivePrice(),
		OnSale:         p.IsSale,
		ImageURL:       p.ImageURL,
		CategoryID:     p.CategoryID,
		SellerID:       p.SellerID,
	}
}

func toProductViews(products []catalog.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, toProductView(&products[i]))
	}
	return views
}
