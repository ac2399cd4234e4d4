package model

import (
	"time"

	"github.com/google/uuid"
)

// Reserved merchant codes. Orders carrying one of these are fulfilled by the
// platform itself rather than a third-party seller.
const (
	MerchantCodeAdmin  = "admin"
	MerchantCodeParent = "parent"
)

// Merchant represents a seller, looked up by its stable merchant code to
// decorate order-split views. Read-only from the order core's perspective.
type Merchant struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Address   string    `json:"address" db:"address"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// IsPlatformCode reports whether code is one of the reserved platform sentinels.
func IsPlatformCode(code string) bool {
	return code == MerchantCodeAdmin || code == MerchantCodeParent
}

// PlatformMerchant returns the fixed display record used for
// platform-fulfilled orders and line items.
func PlatformMerchant() Merchant {
	return Merchant{
		Code:    MerchantCodeAdmin,
		Name:    "PlantKart Nursery",
		Email:   "support@plantkart.in",
		Phone:   "+91 80000 00000",
		Address: "PlantKart Fulfilment Centre, Bengaluru",
	}
}

// PlaceholderMerchant returns the synthetic record used when a merchant code
// cannot be resolved, so a stale code never fails a whole order view.
func PlaceholderMerchant(code string) Merchant {
	return Merchant{
		Code:    code,
		Name:    "Merchant " + code,
		Email:   "N/A",
		Phone:   "N/A",
		Address: "N/A",
	}
}
