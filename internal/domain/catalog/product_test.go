package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	tests := []struct {
		name        string
		productName string
		slug        string
		price       decimal.Decimal
		wantErr     bool
	}{
		{
			name:        "valid product",
			productName: "Hand-Woven Basket",
			slug:        "hand-woven-basket",
			price:       decimal.NewFromFloat(120.00),
			wantErr:     false,
		},
		{
			name:        "empty name",
			productName: "",
			slug:        "some-slug",
			price:       decimal.NewFromInt(10),
			wantErr:     true,
		},
		{
			name:        "empty slug",
			productName: "Basket",
			slug:        "",
			price:       decimal.NewFromInt(10),
			wantErr:     true,
		},
		{
			name:        "slug with invalid characters",
			productName: "Basket",
			slug:        "Hand Woven!",
			price:       decimal.NewFromInt(10),
			wantErr:     true,
		},
		{
			name:        "negative price",
			productName: "Basket",
			slug:        "basket",
			price:       decimal.NewFromInt(-5),
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := NewProduct(tt.productName, tt.slug, tt.price)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, product.ID)
			assert.True(t, product.IsAvailable)
			assert.False(t, product.IsSale)
		})
	}
}

func TestNewSellerProduct(t *testing.T) {
	sellerID := uuid.New()
	product, err := NewSellerProduct(sellerID, "Chitenge Tote", "chitenge-tote", decimal.NewFromInt(80))
	require.NoError(t, err)
	require.NotNil(t, product.SellerID)
	assert.Equal(t, sellerID, *product.SellerID)
	assert.True(t, product.IsOwnedBy(sellerID))
	assert.False(t, product.IsOwnedBy(uuid.New()))
}

func TestProductSale(t *testing.T) {
	product, err := NewProduct("Basket", "basket", decimal.NewFromInt(100))
	require.NoError(t, err)

	// Effective price is the regular price when not on sale
	assert.True(t, product.EffectivePrice().Equal(decimal.NewFromInt(100)))

	err = product.StartSale(decimal.NewFromInt(75))
	require.NoError(t, err)
	assert.True(t, product.IsSale)
	assert.True(t, product.EffectivePrice().Equal(decimal.NewFromInt(75)))

	product.EndSale()
	assert.False(t, product.IsSale)
	assert.True(t, product.EffectivePrice().Equal(decimal.NewFromInt(100)))
}

func TestProductStartSaleRejectsBadPrices(t *testing.T) {
	product, err := NewProduct("Basket", "basket", decimal.NewFromInt(100))
	require.NoError(t, err)

	assert.Error(t, product.StartSale(decimal.NewFromInt(-1)))
	assert.Error(t, product.StartSale(decimal.NewFromInt(150)), "sale price above regular price must be rejected")
}

func TestProductSetPrice(t *testing.T) {
	product, err := NewProduct("Basket", "basket", decimal.NewFromInt(100))
	require.NoError(t, err)

	require.NoError(t, product.SetPrice(decimal.NewFromInt(110)))
	assert.True(t, product.Price.Equal(decimal.NewFromInt(110)))

	assert.Error(t, product.SetPrice(decimal.NewFromInt(-1)))
}

func TestNewCategory(t *testing.T) {
	category, err := NewCategory("Handicrafts", "handicrafts")
	require.NoError(t, err)
	assert.Equal(t, "Handicrafts", category.Name)

	_, err = NewCategory("", "slug")
	assert.Error(t, err)

	_, err = NewCategory("Name", "Bad Slug")
	assert.Error(t, err)
}
