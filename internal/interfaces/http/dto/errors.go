package dto

import "net/http"

// General error codes
const (
	ErrCodeUnknown    = "UNKNOWN"
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNotFound   = "NOT_FOUND"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes carried by domain errors are used on the wire unchanged so
// clients can branch on them.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Input errors -> 400 Bad Request
	ErrCodeValidation:        http.StatusBadRequest,
	ErrCodeBadRequest:        http.StatusBadRequest,
	"INVALID_INPUT":          http.StatusBadRequest,
	"INVALID_QUANTITY":       http.StatusBadRequest,
	"INVALID_PRICE":          http.StatusBadRequest,
	"INVALID_PRODUCT":        http.StatusBadRequest,
	"INVALID_PAYMENT_METHOD": http.StatusBadRequest,
	"INVALID_RETURN_REASON":  http.StatusBadRequest,
	"INVALID_EXPENSE_REASON": http.StatusBadRequest,
	"INVALID_ODOMETER":       http.StatusBadRequest,
	"INVALID_AMOUNT":         http.StatusBadRequest,
	"MISSING_DISTRIBUTOR":    http.StatusBadRequest,
	"MISSING_EXPIRY":         http.StatusBadRequest,
	"MISSING_PRODUCT_INFO":   http.StatusBadRequest,
	"EMPTY_SALE":             http.StatusBadRequest,

	// Resource errors -> 404 Not Found
	ErrCodeNotFound:        http.StatusNotFound,
	"TRIP_NOT_FOUND":       http.StatusNotFound,
	"BATCH_NOT_FOUND":      http.StatusNotFound,
	"ALLOCATION_NOT_FOUND": http.StatusNotFound,

	// Conflicts -> 409
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":   http.StatusUnprocessableEntity,
	"ALLOCATION_SHORTFALL": http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not mapped.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
