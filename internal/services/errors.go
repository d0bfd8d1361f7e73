// internal/services/errors.go
package services

import "errors"

// Business errors returned by the services. Handlers map these onto the
// response envelope; anything not in this list is treated as unexpected,
// logged with full detail, and surfaced as a generic message.
var (
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("not allowed to perform this action")

	ErrProductNotFound      = errors.New("product not found")
	ErrAddressNotFound      = errors.New("address not found")
	ErrShippingRuleNotFound = errors.New("no shipping rule for this destination")
	ErrOrderNotFound        = errors.New("order not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrCartItemNotFound     = errors.New("cart item not found")

	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidColor       = errors.New("selected color is not offered for this product")
	ErrNotCustomizable    = errors.New("product does not support customization")
	ErrProductUnavailable = errors.New("product is out of stock")

	ErrOrderNotCancellable = errors.New("only pending orders can be cancelled")
	ErrInvalidTransition   = errors.New("invalid order status transition")
)

// IsBusinessError reports whether err belongs to the taxonomy above and is
// therefore safe to show to a user.
func IsBusinessError(err error) bool {
	for _, known := range []error{
		ErrUnauthorized, ErrForbidden,
		ErrProductNotFound, ErrAddressNotFound, ErrShippingRuleNotFound,
		ErrOrderNotFound, ErrUserNotFound, ErrCartItemNotFound,
		ErrEmptyCart, ErrInvalidColor, ErrNotCustomizable, ErrProductUnavailable,
		ErrOrderNotCancellable, ErrInvalidTransition,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
