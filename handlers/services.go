package handlers

import (
	"mime"
	"net/http"

	"roadguard/middleware"
	"roadguard/models"
	"roadguard/services/servicerequest"
	"roadguard/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ServiceRequestHandler struct {
	Service servicerequest.LifecycleService
}

func NewServiceRequestHandler(s servicerequest.LifecycleService) *ServiceRequestHandler {
	return &ServiceRequestHandler{Service: s}
}

// CreateServiceRequestHandler accepts JSON only. Images are uploaded by the
// client beforehand and referenced through imageUrl.
func (h *ServiceRequestHandler) CreateServiceRequestHandler(c *gin.Context) {
	if mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type")); mediaType == "multipart/form-data" {
		utils.RespondError(c, utils.NewUnsupportedMediaError("Multipart uploads are not supported; send JSON with imageUrl"))
		return
	}

	var input models.CreateServiceRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		getLogger(c).Debug("Invalid service request body", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	req, err := h.Service.Create(c.Request.Context(), middleware.AccountID(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, req)
}

func (h *ServiceRequestHandler) GetServiceRequestHandler(c *gin.Context) {
	view, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, view)
}
