package model

// Status represents the fulfilment state of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// StatusMeta holds display metadata for a status.
type StatusMeta struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// StatusMetadata is the canonical status display table. Every consumer
// (list badges, detail views, merchant dashboards) reads from this one map.
var StatusMetadata = map[Status]StatusMeta{
	StatusPending:    {Label: "Pending", Color: "#f59e0b"},
	StatusConfirmed:  {Label: "Confirmed", Color: "#3b82f6"},
	StatusProcessing: {Label: "Processing", Color: "#8b5cf6"},
	StatusShipped:    {Label: "Shipped", Color: "#06b6d4"},
	StatusDelivered:  {Label: "Delivered", Color: "#10b981"},
	StatusCancelled:  {Label: "Cancelled", Color: "#ef4444"},
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	_, ok := StatusMetadata[s]
	return ok
}

// Label returns the human-readable display name for the status.
// Unknown statuses fall back to the raw value.
func (s Status) Label() string {
	if meta, ok := StatusMetadata[s]; ok {
		return meta.Label
	}
	return string(s)
}
