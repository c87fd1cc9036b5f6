package domain

import "errors"

var (
	// ErrBrandAndItemRequired is returned when a resolve query has a blank brand or item name
	ErrBrandAndItemRequired = errors.New("brand and item are required")

	// ErrQuantityRequiredInStrictMode is returned when strict resolution is requested without a quantity
	ErrQuantityRequiredInStrictMode = errors.New("quantity is required in strict mode")

	// ErrNameAndBrandRequired is returned when a batch row or create request has a blank name or brand
	ErrNameAndBrandRequired = errors.New("name and brand are required")

	// ErrDuplicateID is returned by a store when an insert collides with an existing item id
	ErrDuplicateID = errors.New("duplicate item id")

	// ErrItemNotFound is returned when no item exists for the requested id
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidRequest is returned when request parameters are malformed
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrBatchTooLarge is returned when a batch exceeds the configured row limit
	ErrBatchTooLarge = errors.New("batch exceeds maximum row count")

	// ErrStoreFailure is returned when the catalogue store fails unexpectedly
	ErrStoreFailure = errors.New("catalogue store failure")
)

// Machine-readable error codes returned to API clients.
const (
	CodeBrandAndItemRequired         = "brand_and_item_required"
	CodeQuantityRequiredInStrictMode = "quantity_required_in_strict_mode"
	CodeNameAndBrandRequired         = "name_and_brand_required"
	CodeItemNotFound                 = "item_not_found"
	CodeInvalidRequest               = "invalid_request"
	CodeBatchTooLarge                = "batch_too_large"
	CodeRateLimited                  = "rate_limited"
	CodeServerError                  = "server_error"
)

// ErrorCode maps an error to the code exposed to clients. Anything that is
// not a recognised validation failure collapses to CodeServerError so that
// storage details never leak.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBrandAndItemRequired):
		return CodeBrandAndItemRequired
	case errors.Is(err, ErrQuantityRequiredInStrictMode):
		return CodeQuantityRequiredInStrictMode
	case errors.Is(err, ErrNameAndBrandRequired):
		return CodeNameAndBrandRequired
	case errors.Is(err, ErrItemNotFound):
		return CodeItemNotFound
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrBatchTooLarge):
		return CodeBatchTooLarge
	default:
		return CodeServerError
	}
}
