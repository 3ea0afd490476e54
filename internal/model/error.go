package model

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeValidation        = "VALIDATION_FAILED"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeCategoryNotFound  = "CATEGORY_NOT_FOUND"
	ErrCodeCategoryExists    = "CATEGORY_EXISTS"
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeInvalidStatus     = "INVALID_STATUS"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodePaymentFailed     = "PAYMENT_VERIFICATION_FAILED"
	ErrCodeGatewayFailure    = "GATEWAY_FAILURE"
	ErrCodeUploadUnavailable = "UPLOAD_UNAVAILABLE"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a business-logic failure with a stable code.
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
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrCategoryNotFound  = NewDomainError(ErrCodeCategoryNotFound, "Category not found")
	ErrCategoryExists    = NewDomainError(ErrCodeCategoryExists, "Category already exists")
	ErrOrderNotFound     = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrInvalidStatus     = NewDomainError(ErrCodeInvalidStatus, "Invalid order status")
	ErrInvalidQuantity   = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrPaymentFailed     = NewDomainError(ErrCodePaymentFailed, "Payment verification failed")
	ErrUploadUnavailable = NewDomainError(ErrCodeUploadUnavailable, "Image upload is not configured")
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
