package order

import (
	"testing"

	"plantkart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestDisplayItems_NormalizedRowsPreferred(t *testing.T) {
	logger := zerolog.Nop()

	blob := `[{"name":"Blob Plant","price":1,"quantity":1}]`
	ord := &model.Order{ID: uuid.New(), CartItems: &blob}

	items := []model.OrderItem{
		{
			ProductID: "PLT-001",
			Name:      "Mango Sapling",
			ImageURL:  strPtr("https://cdn.plantkart.in/mango.jpg"),
			Quantity:  2,
			UnitPrice: floatPtr(250),
			Subtotal:  500,
		},
	}

	display := DisplayItems(ord, items, logger)

	require.Len(t, display, 1)
	assert.Equal(t, "Mango Sapling", display[0].Name)
	assert.Equal(t, "https://cdn.plantkart.in/mango.jpg", display[0].ImageURL)
	assert.Equal(t, 250.0, display[0].UnitPrice)
	assert.Equal(t, 500.0, display[0].Subtotal)
}

func TestDisplayItems_LegacyPriceFallback(t *testing.T) {
	logger := zerolog.Nop()
	ord := &model.Order{ID: uuid.New()}

	items := []model.OrderItem{
		{Name: "Tulsi", Quantity: 2, Price: floatPtr(250), Subtotal: 500},
	}

	display := DisplayItems(ord, items, logger)

	require.Len(t, display, 1)
	assert.Equal(t, 250.0, display[0].UnitPrice, "legacy price field used when unit_price absent")
}

func TestDisplayItems_BlobFallback(t *testing.T) {
	logger := zerolog.Nop()

	blob := `[
		{"productId":"PLT-003","plant_name":"Areca Palm","image":"areca.jpg","price":399,"quantity":2},
		{"name":"Jade Plant","image_url":"jade.jpg","unitPrice":149,"quantity":1}
	]`
	ord := &model.Order{ID: uuid.New(), OrderCode: "PK-LEGACY1", CartItems: &blob}

	display := DisplayItems(ord, nil, logger)

	require.Len(t, display, 2)

	assert.Equal(t, "Areca Palm", display[0].Name, "plant_name fallback")
	assert.Equal(t, "areca.jpg", display[0].ImageURL, "image fallback")
	assert.Equal(t, 399.0, display[0].UnitPrice)
	assert.Equal(t, 798.0, display[0].Subtotal)

	assert.Equal(t, "Jade Plant", display[1].Name)
	assert.Equal(t, "jade.jpg", display[1].ImageURL)
	assert.Equal(t, 149.0, display[1].UnitPrice)
}

func TestDisplayItems_MalformedBlob(t *testing.T) {
	logger := zerolog.Nop()

	blob := `{"not":"a list"`
	ord := &model.Order{ID: uuid.New(), CartItems: &blob}

	display := DisplayItems(ord, nil, logger)

	assert.Empty(t, display, "parse failure yields empty list, not an error")
}

func TestDisplayItems_NoItemsNoBlob(t *testing.T) {
	ord := &model.Order{ID: uuid.New()}

	display := DisplayItems(ord, nil, zerolog.Nop())

	assert.Empty(t, display)
}

func TestOrderItem_EffectiveUnitPrice(t *testing.T) {
	tests := []struct {
		name     string
		item     model.OrderItem
		expected float64
	}{
		{
			name:     "Unit price preferred",
			item:     model.OrderItem{UnitPrice: floatPtr(250), Price: floatPtr(100)},
			expected: 250,
		},
		{
			name:     "Legacy price fallback",
			item:     model.OrderItem{Price: floatPtr(250)},
			expected: 250,
		},
		{
			name:     "No price at all",
			item:     model.OrderItem{},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.item.EffectiveUnitPrice())
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, withinTolerance(500.01, 500), "0.01 discrepancy passes")
	assert.False(t, withinTolerance(500.011, 500), "0.011 discrepancy fails")
	assert.True(t, withinTolerance(100, 100))
}
