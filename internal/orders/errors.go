package orders

import "errors"

var (
	ErrCustomerRequired = errors.New("customer is required")
	ErrOrderNotFound    = errors.New("order not found")
)
