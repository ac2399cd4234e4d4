package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Order represents one purchase transaction. A parent order (ParentOrderID
// nil) is the top-level record for a checkout; child orders are the
// per-merchant sub-orders produced by splitting the parent's items by seller.
type Order struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	OrderCode     string     `json:"orderCode" db:"order_code"`
	ParentOrderID *uuid.UUID `json:"parentOrderId,omitempty" db:"parent_order_id"`
	MerchantCode  string     `json:"merchantCode" db:"merchant_code"`
	UserID        string     `json:"userId" db:"user_id"`
	TotalAmount   float64    `json:"totalAmount" db:"total_amount"`
	Subtotal      float64    `json:"subtotal" db:"subtotal"`
	Status        Status     `json:"status" db:"status"`
	// CartItems is the legacy serialized line-item blob. The normalized
	// order_items rows are authoritative when present.
	CartItems       *string   `json:"-" db:"cart_items"`
	DeliveryAddress *string   `json:"-" db:"delivery_address"`
	QuotationCode   *string   `json:"quotationCode,omitempty" db:"quotation_code"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// IsParent reports whether the order is a top-level (non merchant-scoped) order.
func (o *Order) IsParent() bool {
	return o.ParentOrderID == nil
}

// Address decodes the stored delivery address. The column holds either a
// JSON-encoded DeliveryAddress or legacy free text; the fallback is resolved
// here, once, so views never parse the raw column themselves.
func (o *Order) Address() (*DeliveryAddress, string) {
	if o.DeliveryAddress == nil || *o.DeliveryAddress == "" {
		return nil, ""
	}
	var addr DeliveryAddress
	if err := json.Unmarshal([]byte(*o.DeliveryAddress), &addr); err != nil {
		return nil, *o.DeliveryAddress
	}
	return &addr, ""
}

// DeliveryAddress is the structured shipping address attached to an order.
type DeliveryAddress struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	AddressLine string `json:"addressLine"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
	Type        string `json:"type"`
}

// OrderItem represents one line within an order. UnitPrice is authoritative;
// Price is the legacy field kept for rows written before the rename.
type OrderItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID string    `json:"productId" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	ImageURL  *string   `json:"imageUrl,omitempty" db:"image_url"`
	Quantity  int       `json:"quantity" db:"quantity"`
	UnitPrice *float64  `json:"unitPrice,omitempty" db:"unit_price"`
	Price     *float64  `json:"price,omitempty" db:"price"`
	Subtotal  float64   `json:"subtotal" db:"subtotal"`
	Variety   *string   `json:"variety,omitempty" db:"variety"`
	PotSize   *string   `json:"potSize,omitempty" db:"pot_size"`
	Grafted   *bool     `json:"grafted,omitempty" db:"grafted"`
}

// EffectiveUnitPrice resolves the unit price with the legacy fallback:
// unit_price, then price, then 0.
func (i *OrderItem) EffectiveUnitPrice() float64 {
	if i.UnitPrice != nil {
		return *i.UnitPrice
	}
	if i.Price != nil {
		return *i.Price
	}
	return 0
}

// CartLine is a single line of a checkout request.
type CartLine struct {
	ProductID    string  `json:"productId"`
	Name         string  `json:"name"`
	MerchantCode string  `json:"merchantCode"`
	ImageURL     *string `json:"imageUrl,omitempty"`
	UnitPrice    float64 `json:"unitPrice"`
	Quantity     int     `json:"quantity"`
	Variety      *string `json:"variety,omitempty"`
	PotSize      *string `json:"potSize,omitempty"`
	Grafted      *bool   `json:"grafted,omitempty"`
}

// PlaceOrderRequest represents the request payload for checkout.
type PlaceOrderRequest struct {
	UserID          string          `json:"userId"`
	QuotationCode   *string         `json:"quotationCode,omitempty"`
	DeliveryAddress DeliveryAddress `json:"deliveryAddress"`
	Items           []CartLine      `json:"items"`
}

// PlaceOrderResponse represents the response payload for a created order.
type PlaceOrderResponse struct {
	OrderID     uuid.UUID `json:"orderId"`
	OrderCode   string    `json:"orderCode"`
	TotalAmount float64   `json:"totalAmount"`
	Children    []Order   `json:"children"`
}

// OrderSummary is a parent order decorated with its aggregated child status,
// as rendered in order lists.
type OrderSummary struct {
	Order           Order  `json:"order"`
	AggregateStatus Status `json:"aggregateStatus"`
	StatusLabel     string `json:"statusLabel"`
	ChildCount      int    `json:"childCount"`
}

// DisplayItem is a line item flattened for presentation, with the dual
// normalized/legacy representation already resolved.
type DisplayItem struct {
	ProductID string  `json:"productId,omitempty"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"imageUrl,omitempty"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// SplitOrder pairs a child order with its display items inside a merchant group.
type SplitOrder struct {
	Order Order         `json:"order"`
	Items []DisplayItem `json:"items"`
}

// MerchantGroup is one merchant's slice of a split order, ready for rendering.
type MerchantGroup struct {
	MerchantCode  string       `json:"merchantCode"`
	Merchant      Merchant     `json:"merchant"`
	Orders        []SplitOrder `json:"orders"`
	MerchantTotal float64      `json:"merchantTotal"`
}

// OrderDetail is the full detail view of an order: the record itself, its
// merchant-grouped children, and the aggregated status.
type OrderDetail struct {
	Order           Order           `json:"order"`
	AggregateStatus Status          `json:"aggregateStatus"`
	StatusLabel     string          `json:"statusLabel"`
	Groups          []MerchantGroup `json:"groups"`
}

// UpdateStatusRequest represents the request payload for a status write.
type UpdateStatusRequest struct {
	Status Status `json:"status"`
}
