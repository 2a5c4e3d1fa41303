package routes

import (
	"time"

	"showdan/handlers"
	"showdan/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterEventRoutes registers event endpoints.
func RegisterEventRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/events")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.CreateEventHandler)
		api.GET("/:eventID/thread", hb.OpenThreadHandler)
	}
}

// RegisterOfferRoutes registers the negotiation endpoints.
func RegisterOfferRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/offers")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/events/:eventID/send-offer", hb.SendOfferHandler)
		api.POST("/events/:eventID/professionals/:proID/accept", hb.AcceptOfferHandler)
		api.POST("/events/:eventID/professionals/:proID/reject", hb.RejectOfferHandler)
		api.POST("/threads/:threadID/counter-offer", hb.CounterOfferHandler)
		api.POST("/threads/:threadID/chat", hb.ChatHandler)
		api.GET("/threads/:threadID/messages", hb.ThreadMessagesHandler)
		api.POST("/quick-booking", hb.QuickBookingHandler)
		api.GET("/inbox", hb.InboxHandler)
		api.GET("/inbox/stats", hb.InboxStatsHandler)
	}
}

// RegisterBusyTimeRoutes registers the caller's availability endpoints.
func RegisterBusyTimeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/busy-times")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.CreateBusyTimeHandler)
		api.GET("", hb.ListBusyTimesHandler)
		api.DELETE("/:id", hb.DeleteBusyTimeHandler)
		api.POST("/delete-day", hb.DeleteBusyDayHandler)
	}
}

// RegisterCalendarRoutes registers calendar views.
func RegisterCalendarRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/calendar")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/month", hb.CalendarMonthHandler)
		api.GET("/day", hb.CalendarDayHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterEventRoutes(r, hb)
	RegisterOfferRoutes(r, hb)
	RegisterBusyTimeRoutes(r, hb)
	RegisterCalendarRoutes(r, hb)
}
