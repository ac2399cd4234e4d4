package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON          = "INVALID_JSON"
	ErrCodeMissingField         = "MISSING_FIELD"
	ErrCodeOrderNotFound        = "ORDER_NOT_FOUND"
	ErrCodeNotParentOrder       = "NOT_PARENT_ORDER"
	ErrCodeInvalidQuantity      = "INVALID_QUANTITY"
	ErrCodeInvalidStatus        = "INVALID_STATUS"
	ErrCodeEmptyOrder           = "EMPTY_ORDER"
	ErrCodeInvalidPincode       = "INVALID_PINCODE"
	ErrCodeUnserviceablePincode = "UNSERVICEABLE_PINCODE"
	ErrCodeUnauthorised         = "UNAUTHORIZED"
	ErrCodeForbidden            = "FORBIDDEN"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrOrderNotFound        = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrNotParentOrder       = NewDomainError(ErrCodeNotParentOrder, "Order is not a parent order")
	ErrInvalidQuantity      = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidStatus        = NewDomainError(ErrCodeInvalidStatus, "Unknown order status value")
	ErrEmptyOrder           = NewDomainError(ErrCodeEmptyOrder, "Order must contain at least one item")
	ErrInvalidPincode       = NewDomainError(ErrCodeInvalidPincode, "Pincode must be a 6-digit number")
	ErrUnserviceablePincode = NewDomainError(ErrCodeUnserviceablePincode, "Delivery is not available for this pincode")
)
