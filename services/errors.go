package services

import "errors"

// Error taxonomy for the order workflow. Controllers classify these with
// errors.Is and map them to HTTP statuses.
var (
	// ErrNotFound means a referenced entity (restaurant, order, user) is absent.
	ErrNotFound = errors.New("not found")
	// ErrInvalidReference means the cart references a menu item that does not
	// belong to the restaurant, or carries an unusable quantity.
	ErrInvalidReference = errors.New("invalid menu item reference")
	// ErrUnauthorized means the authenticated identity does not own the
	// resource it is trying to change.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidSignature means webhook authentication failed.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrGateway means the payment provider call failed or returned no
	// session URL.
	ErrGateway = errors.New("payment gateway error")
	// ErrInvalidStatus means an order status update named an unknown status.
	ErrInvalidStatus = errors.New("invalid order status")
)
