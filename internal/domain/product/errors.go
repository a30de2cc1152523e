package product

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrUnexpectedResponse = errors.New("unexpected response from products API")
)
