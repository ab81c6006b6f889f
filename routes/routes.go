package routes

import (
	"time"

	"roadguard/config"
	"roadguard/handlers"
	"roadguard/middleware"
	"roadguard/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers login and token endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/user/login", hb.UserLoginHandler)
		api.POST("/admin/login", hb.AdminLoginHandler)
		api.GET("/validate", middleware.JWTAuthMiddleware(hb.AuthService), hb.ValidateTokenHandler)
	}
}

// RegisterUserRoutes registers endpoints for the signed-in account.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/user")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AuthService))
		api.GET("/me", hb.GetProfileHandler)
	}
}

// RegisterWorkshopRoutes registers the public directory and the worker's own workshop.
func RegisterWorkshopRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/workshops")
	{
		// Worker endpoints go first so /me is never captured by /:id.
		own := api.Group("/me")
		own.Use(middleware.JWTAuthMiddleware(hb.AuthService, models.RoleWorker))
		own.GET("/own", hb.GetOwnWorkshopHandler)
		own.POST("", hb.CreateOwnWorkshopHandler)
		own.PATCH("", hb.UpdateOwnWorkshopHandler)

		api.GET("", hb.ListWorkshopsHandler)
		api.GET("/:id", hb.GetWorkshopHandler)
	}
}

// RegisterServiceRoutes registers service request submission and lookup.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AuthService))
		api.POST("", hb.CreateServiceRequestHandler)
		api.GET("/:id", hb.GetServiceRequestHandler)
	}
}

// RegisterReviewRoutes registers review endpoints.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		api.GET("/workshops/:id", hb.ListWorkshopReviewsHandler)
		api.POST("", middleware.JWTAuthMiddleware(hb.AuthService), hb.CreateReviewHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(hb.AuthService, models.RoleAdmin))
		adminGroup.GET("/service-requests", hb.AdminHandler.ListServiceRequestsHandler)
		adminGroup.PATCH("/service-requests/:id/status", hb.AdminHandler.UpdateServiceStatusHandler)
		adminGroup.GET("/stats", hb.AdminHandler.StatsHandler)
		adminGroup.GET("/settings", hb.AdminHandler.GetSettingsHandler)
		adminGroup.PATCH("/settings", hb.AdminHandler.UpdateSettingsHandler)
	}
}

// RegisterOpsRoutes registers health, metrics and the realtime socket.
func RegisterOpsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
	if hb.MetricsHandler != nil {
		r.GET("/metrics", hb.MetricsHandler)
	}
	if hb.RealtimeHandler != nil {
		r.GET("/ws", hb.RealtimeHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := config.AllowedOrigins()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: !allowsAny(origins),
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterWorkshopRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterOpsRoutes(r, hb)
}

// gin-contrib/cors refuses a wildcard origin together with credentials.
func allowsAny(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
