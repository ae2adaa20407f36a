package order

import "storeadmin-be/internal/apperr"

var (
	ErrOrderNotFound   = apperr.NotFound("Order not found")
	ErrInvalidProducts = apperr.InvalidRequest("Some products are invalid.")
	ErrMissingFields   = apperr.InvalidRequest("Missing required fields.")
)
