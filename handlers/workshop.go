package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"roadguard/middleware"
	"roadguard/models"
	"roadguard/services/workshop"
	"roadguard/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type WorkshopHandler struct {
	Service workshop.WorkshopService
}

func NewWorkshopHandler(s workshop.WorkshopService) *WorkshopHandler {
	return &WorkshopHandler{Service: s}
}

// ListWorkshopsHandler serves the public directory.
// Query: q, status (open|closed|all), sort (nearby|rated), lat, lng, radiusKm.
func (h *WorkshopHandler) ListWorkshopsHandler(c *gin.Context) {
	query := models.WorkshopQuery{
		Q:        c.Query("q"),
		Status:   c.DefaultQuery("status", "all"),
		Sort:     c.DefaultQuery("sort", workshop.SortNearby),
		Lat:      optionalFloat(c, "lat"),
		Lng:      optionalFloat(c, "lng"),
		RadiusKm: optionalFloat(c, "radiusKm"),
	}
	rows, err := h.Service.List(c.Request.Context(), query)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rows)
}

func (h *WorkshopHandler) GetWorkshopHandler(c *gin.Context) {
	w, err := h.Service.Get(c.Request.Context(), c.Param("id"), optionalFloat(c, "lat"), optionalFloat(c, "lng"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, w)
}

func (h *WorkshopHandler) GetOwnWorkshopHandler(c *gin.Context) {
	w, err := h.Service.GetOwn(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, w)
}

func (h *WorkshopHandler) CreateOwnWorkshopHandler(c *gin.Context) {
	var input models.WorkshopInput
	if err := c.ShouldBindJSON(&input); err != nil {
		getLogger(c).Debug("Invalid workshop body", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	w, err := h.Service.CreateOwn(c.Request.Context(), middleware.AccountID(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, w)
}

func (h *WorkshopHandler) UpdateOwnWorkshopHandler(c *gin.Context) {
	var input models.WorkshopInput
	if err := c.ShouldBindJSON(&input); err != nil {
		getLogger(c).Debug("Invalid workshop body", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	w, err := h.Service.UpdateOwn(c.Request.Context(), middleware.AccountID(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, w)
}

func parseFloat(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}
