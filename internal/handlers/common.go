// internal/handlers/common.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/salehkamalkamel/rofida-furniture-backend/internal/auth"
	"github.com/salehkamalkamel/rofida-furniture-backend/internal/i18n"
	"github.com/salehkamalkamel/rofida-furniture-backend/internal/services"
	"github.com/salehkamalkamel/rofida-furniture-backend/internal/utils"
)

// mustAuth pulls the caller identity the auth middleware stored. A miss
// here means a route was registered without AuthRequired.
func mustAuth(c *gin.Context) (auth.Context, bool) {
	authCtx, ok := auth.FromGin(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return auth.Context{}, false
	}
	return authCtx, true
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

// handleServiceError maps the service error taxonomy onto the response
// envelope. Unknown errors are logged and hidden behind a generic message.
func handleServiceError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrUnauthorized):
		utils.UnauthorizedResponse(c, "")
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, "")
	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, "product")
	case errors.Is(err, services.ErrAddressNotFound):
		utils.NotFoundResponse(c, "address")
	case errors.Is(err, services.ErrShippingRuleNotFound):
		utils.ErrorResponse(c, 422, "NO_SHIPPING_RULE", i18n.T(lang, i18n.KeyShippingRuleNotFound), nil)
	case errors.Is(err, services.ErrOrderNotFound):
		utils.NotFoundResponse(c, "order")
	case errors.Is(err, services.ErrUserNotFound):
		utils.NotFoundResponse(c, "user")
	case errors.Is(err, services.ErrCartItemNotFound):
		utils.NotFoundResponse(c, "cart.item")
	case errors.Is(err, services.ErrEmptyCart):
		utils.ErrorResponse(c, 422, "EMPTY_CART", i18n.T(lang, i18n.KeyCartEmpty), nil)
	case errors.Is(err, services.ErrProductUnavailable):
		utils.ErrorResponse(c, 422, "PRODUCT_UNAVAILABLE", i18n.T(lang, i18n.KeyProductUnavailable), nil)
	case errors.Is(err, services.ErrInvalidColor),
		errors.Is(err, services.ErrNotCustomizable):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, services.ErrOrderNotCancellable),
		errors.Is(err, services.ErrInvalidTransition):
		utils.ConflictResponse(c, err.Error())
	case services.IsBusinessError(err):
		utils.BadRequestResponse(c, err.Error(), nil)
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("Unhandled service error")
		utils.InternalErrorResponse(c, "")
	}
}
