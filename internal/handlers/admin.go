// internal/handlers/admin.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/salehkamalkamel/rofida-furniture-backend/internal/i18n"
	"github.com/salehkamalkamel/rofida-furniture-backend/internal/services"
	"github.com/salehkamalkamel/rofida-furniture-backend/internal/utils"
)

type AdminHandler struct {
	adminService    *services.AdminService
	shippingService *services.ShippingService
}

func NewAdminHandler(adminService *services.AdminService, shippingService *services.ShippingService) *AdminHandler {
	return &AdminHandler{
		adminService:    adminService,
		shippingService: shippingService,
	}
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	authCtx, ok := mustAuth(c)
	if !ok {
		return
	}

	stats, err := h.adminService.GetDashboardStats(authCtx)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"stats": stats})
}

// GET /admin/dashboard/top-products
func (h *AdminHandler) GetTopProducts(c *gin.Context) {
	authCtx, ok := mustAuth(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	stats, err := h.adminService.GetTopProducts(authCtx, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"top_products": stats})
}

// GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	authCtx, ok := mustAuth(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	filters := services.AdminUserFilters{
		Role:   c.Query("role"),
		Status: c.Query("status"),
		Search: params.Search,
	}

	users, total, err := h.adminService.ListUsers(authCtx, filters, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	result := utils.CreatePaginationResult(users, total, params)
	utils.PaginatedResponse(c, result)
}

// PUT /admin/users/:id/status
func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	authCtx, ok := mustAuth(c)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.adminService.UpdateUserStatus(authCtx, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserStatusUpdated),
		"user":    user,
	})
}

// GET /admin/shipping-rules
func (h *AdminHandler) ListShippingRules(c *gin.Context) {
	if _, ok := mustAuth(c); !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	rules, total, err := h.shippingService.ListRules(params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	result := utils.CreatePaginationResult(rules, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /admin/shipping-rules
func (h *AdminHandler) CreateShippingRule(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	authCtx, ok := mustAuth(c)
	if !ok {
		return
	}

	var req services.CreateShippingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	rule, err := h.adminService.CreateShippingRule(authCtx, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"shipping_rule": rule})
}

// PUT /admin/shipping-rules/:id
func (h *AdminHandler) UpdateShippingRule(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	authCtx, ok := mustAuth(c)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.CreateShippingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	rule, err := h.adminService.UpdateShippingRule(authCtx, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"shipping_rule": rule})
}

// DELETE /admin/shipping-rules/:id
func (h *AdminHandler) DeleteShippingRule(c *gin.Context) {
	authCtx, ok := mustAuth(c)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteShippingRule(authCtx, id); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}
