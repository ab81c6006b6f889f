package handlers

import (
	"net/http"

	"roadguard/models"
	"roadguard/services/admin"
	"roadguard/services/servicerequest"
	"roadguard/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Requests servicerequest.LifecycleService
	Admin    admin.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(requests servicerequest.LifecycleService, as admin.AdminService) *AdminHandler {
	return &AdminHandler{Requests: requests, Admin: as}
}

// ListServiceRequestsHandler returns every request, newest first.
func (ah *AdminHandler) ListServiceRequestsHandler(c *gin.Context) {
	views, err := ah.Requests.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, views)
}

func (ah *AdminHandler) UpdateServiceStatusHandler(c *gin.Context) {
	var input models.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid status")
		return
	}
	req, err := ah.Requests.SetStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Admin updated service status", zap.String("requestID", req.ID), zap.String("status", string(req.Status)))
	utils.JSONSuccess(c, http.StatusOK, req)
}

func (ah *AdminHandler) StatsHandler(c *gin.Context) {
	stats, err := ah.Requests.Stats(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}

func (ah *AdminHandler) GetSettingsHandler(c *gin.Context) {
	settings, err := ah.Admin.GetSettings(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, settings)
}

// UpdateSettingsHandler ignores fields that are missing or not booleans.
func (ah *AdminHandler) UpdateSettingsHandler(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	var input models.UpdateSettingsInput
	if open, ok := raw["openForRequest"].(bool); ok {
		input.OpenForRequest = &open
	}
	settings, err := ah.Admin.UpdateSettings(c.Request.Context(), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, settings)
}
