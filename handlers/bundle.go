package handlers

import (
	"roadguard/services/auth"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	AuthService auth.AuthService

	// Auth endpoints
	UserLoginHandler     gin.HandlerFunc
	AdminLoginHandler    gin.HandlerFunc
	ValidateTokenHandler gin.HandlerFunc
	GetProfileHandler    gin.HandlerFunc

	// Workshop endpoints
	ListWorkshopsHandler     gin.HandlerFunc
	GetWorkshopHandler       gin.HandlerFunc
	GetOwnWorkshopHandler    gin.HandlerFunc
	CreateOwnWorkshopHandler gin.HandlerFunc
	UpdateOwnWorkshopHandler gin.HandlerFunc

	// Service request endpoints
	CreateServiceRequestHandler gin.HandlerFunc
	GetServiceRequestHandler    gin.HandlerFunc

	// Review endpoints
	CreateReviewHandler        gin.HandlerFunc
	ListWorkshopReviewsHandler gin.HandlerFunc

	// Admin endpoints
	AdminHandler *AdminHandler

	// Ops endpoints
	RealtimeHandler gin.HandlerFunc
	HealthHandler   gin.HandlerFunc
	MetricsHandler  gin.HandlerFunc
}
