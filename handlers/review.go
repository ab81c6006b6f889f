package handlers

import (
	"net/http"

	"roadguard/middleware"
	"roadguard/models"
	"roadguard/services/review"
	"roadguard/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	Service review.ReviewService
}

func NewReviewHandler(s review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: s}
}

// CreateReviewHandler creates or replaces the caller's review of a workshop.
func (h *ReviewHandler) CreateReviewHandler(c *gin.Context) {
	var input models.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		getLogger(c).Debug("Invalid review body", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Rating must be an integer between 1 and 5")
		return
	}
	stored, err := h.Service.Upsert(c.Request.Context(), middleware.AccountID(c), middleware.Role(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, stored)
}

func (h *ReviewHandler) ListWorkshopReviewsHandler(c *gin.Context) {
	reviews, err := h.Service.ListByWorkshop(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reviews)
}
