package order

import (
	"encoding/json"
	"math"

	"plantkart/internal/model"

	"github.com/rs/zerolog"
)

// TotalsEpsilon is the tolerance used for every monetary comparison.
// Amounts within 0.01 currency units of each other are considered equal.
const TotalsEpsilon = 0.01

// withinTolerance reports whether two amounts agree within TotalsEpsilon.
func withinTolerance(a, b float64) bool {
	return math.Abs(a-b) <= TotalsEpsilon
}

// cartItemRecord mirrors the legacy serialized cart_items blob. Older
// checkouts wrote several field spellings; all are accepted here so the
// fallback happens once, at this boundary.
type cartItemRecord struct {
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	PlantName string   `json:"plant_name"`
	Image     string   `json:"image"`
	ImageURL  string   `json:"image_url"`
	UnitPrice *float64 `json:"unitPrice"`
	Price     *float64 `json:"price"`
	Quantity  int      `json:"quantity"`
}

func (c *cartItemRecord) displayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.PlantName
}

func (c *cartItemRecord) displayImage() string {
	if c.ImageURL != "" {
		return c.ImageURL
	}
	return c.Image
}

func (c *cartItemRecord) unitPrice() float64 {
	if c.UnitPrice != nil {
		return *c.UnitPrice
	}
	if c.Price != nil {
		return *c.Price
	}
	return 0
}

// DisplayItems flattens an order's line items for presentation. The
// normalized order_items rows are authoritative when present; otherwise the
// legacy cart_items blob is parsed. A malformed blob yields an empty list
// and a log entry rather than an error, so one bad row never breaks a view.
func DisplayItems(ord *model.Order, items []model.OrderItem, logger zerolog.Logger) []model.DisplayItem {
	if len(items) > 0 {
		display := make([]model.DisplayItem, len(items))
		for i, item := range items {
			imageURL := ""
			if item.ImageURL != nil {
				imageURL = *item.ImageURL
			}
			display[i] = model.DisplayItem{
				ProductID: item.ProductID,
				Name:      item.Name,
				ImageURL:  imageURL,
				UnitPrice: item.EffectiveUnitPrice(),
				Quantity:  item.Quantity,
				Subtotal:  item.Subtotal,
			}
		}
		return display
	}

	if ord.CartItems == nil || *ord.CartItems == "" {
		return []model.DisplayItem{}
	}

	var records []cartItemRecord
	if err := json.Unmarshal([]byte(*ord.CartItems), &records); err != nil {
		logger.Warn().
			Err(err).
			Str("order_id", ord.ID.String()).
			Str("order_code", ord.OrderCode).
			Msg("failed to parse legacy cart_items blob")
		return []model.DisplayItem{}
	}

	display := make([]model.DisplayItem, len(records))
	for i, rec := range records {
		price := rec.unitPrice()
		display[i] = model.DisplayItem{
			ProductID: rec.ProductID,
			Name:      rec.displayName(),
			ImageURL:  rec.displayImage(),
			UnitPrice: price,
			Quantity:  rec.Quantity,
			Subtotal:  price * float64(rec.Quantity),
		}
	}
	return display
}
