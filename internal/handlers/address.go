// internal/handlers/address.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/salehkamalkamel/rofida-furniture-backend/internal/i18n"
	"github.com/salehkamalkamel/rofida-furniture-backend/internal/services"
	"github.com/salehkamalkamel/rofida-furniture-backend/internal/utils"
)

type AddressHandler struct {
	addressService *services.AddressService
}

func NewAddressHandler(addressService *services.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// GET /addresses
func (h *AddressHandler) List(c *gin.Context) {
	authCtx, ok := mustAuth(c)
	if !ok {
		return
	}

	addresses, err := h.addressService.List(authCtx)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"addresses": addresses})
}

// POST /addresses
func (h *AddressHandler) Create(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	authCtx, ok := mustAuth(c)
	if !ok {
		return
	}

	var req services.SaveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	address, err := h.addressService.Create(authCtx, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAddressCreated),
		"address": address,
	})
}

// PUT /addresses/:id
func (h *AddressHandler) Update(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	authCtx, ok := mustAuth(c)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.SaveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	address, err := h.addressService.Update(authCtx, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAddressUpdated),
		"address": address,
	})
}

// POST /addresses/:id/default
func (h *AddressHandler) SetDefault(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	authCtx, ok := mustAuth(c)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	address, err := h.addressService.SetDefault(authCtx, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAddressDefaultSet),
		"address": address,
	})
}

// DELETE /addresses/:id
func (h *AddressHandler) Delete(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	authCtx, ok := mustAuth(c)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.addressService.Delete(authCtx, id); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAddressDeleted),
	})
}
