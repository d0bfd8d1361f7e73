// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess      = "success"
	KeyErrorGeneric = "error.generic"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Products
	KeyProductCreated     = "product.created"
	KeyProductUpdated     = "product.updated"
	KeyProductDeleted     = "product.deleted"
	KeyProductNotFound    = "product.not_found"
	KeyProductUnavailable = "product.unavailable"

	// Cart
	KeyCartItemAdded   = "cart.item_added"
	KeyCartItemRemoved = "cart.item_removed"
	KeyCartUpdated     = "cart.updated"
	KeyCartCleared     = "cart.cleared"
	KeyCartEmpty       = "cart.empty"

	// Wishlist
	KeyWishlistAdded   = "wishlist.added"
	KeyWishlistRemoved = "wishlist.removed"

	// Addresses
	KeyAddressCreated    = "address.created"
	KeyAddressUpdated    = "address.updated"
	KeyAddressDeleted    = "address.deleted"
	KeyAddressNotFound   = "address.not_found"
	KeyAddressDefaultSet = "address.default_set"

	// Shipping
	KeyShippingRuleNotFound = "shipping_rule.not_found"

	// Orders
	KeyOrderPlaced        = "order.placed"
	KeyOrderCancelled     = "order.cancelled"
	KeyOrderNotFound      = "order.not_found"
	KeyOrderStatusUpdated = "order.status_updated"

	// Users (admin)
	KeyUserNotFound      = "user.not_found"
	KeyUserStatusUpdated = "user.status_updated"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Files
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
)
