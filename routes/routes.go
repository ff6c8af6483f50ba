package routes

import (
	"time"

	"slotwise/handlers"
	"slotwise/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes registers the endpoints the public booking page
// calls without authentication.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/public")
	{
		api.GET("/providers/:handle", hb.GetProviderByHandleHandler)
		api.GET("/providers/id/:id/services/:serviceId/availability", hb.GetAvailabilityHandler)
		api.POST("/bookings", hb.CreateBookingHandler)
	}
}

// RegisterProviderRoutes registers provider-scoped endpoints behind JWT
// authentication.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/provider")
	api.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
	{
		api.GET("/availability/rules", hb.ListRulesHandler)
		api.POST("/availability/rules", hb.CreateRuleHandler)
		api.DELETE("/availability/rules/:ruleId", hb.DeleteRuleHandler)
		api.POST("/availability/blackouts", hb.CreateBlackoutHandler)
		api.DELETE("/availability/blackouts/:blackoutId", hb.DeleteBlackoutHandler)

		api.POST("/bookings/:bookingId/confirm", hb.ConfirmBookingHandler)
		api.POST("/bookings/:bookingId/cancel", hb.CancelBookingHandler)
		api.POST("/bookings/:bookingId/reschedule", hb.RescheduleBookingHandler)
		api.POST("/bookings/:bookingId/note", hb.AppendBookingNoteHandler)
		api.GET("/bookings/:bookingId/notifications", hb.ListBookingNotificationsHandler)

		api.GET("/dashboard", hb.DashboardHandler)

		api.GET("/wallet", hb.GetWalletHandler)
		api.POST("/wallet/topup", hb.TopUpWalletHandler)
	}
}

// RegisterWebhookRoutes registers gateway callback endpoints. No auth;
// the gateway signature is the credential.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/webhooks/payment", hb.PaymentWebhookHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// SetupCORS configures CORS middleware for the router.
func SetupCORS(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
}
