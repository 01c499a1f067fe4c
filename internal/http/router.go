package api

import (
	stdhttp "net/http"
	"strings"
	"time"

	intconfig "kosbackend/internal/config"
	h "kosbackend/internal/http/handlers"
	"kosbackend/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, handler *h.Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), corsMiddleware(env))
	_ = r.SetTrustedProxies(nil)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	secret := []byte(env.JWTSecret)
	authed := middleware.RequireAuth(secret)
	adminOnly := middleware.RequireAdmin()

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", handler.Health)
		apiGroup.GET("/db-check", handler.DBCheck)

		auth := apiGroup.Group("/auth")
		auth.POST("/login", handler.Login)
		auth.POST("/register", handler.Register)

		users := apiGroup.Group("/users", authed, adminOnly)
		users.GET("", handler.GetUsers)
		users.POST("", handler.CreateUser)
		users.PUT("/:id", handler.UpdateUser)
		users.DELETE("/:id", handler.DeleteUser)

		facilities := apiGroup.Group("/facilities")
		facilities.GET("", handler.GetFacilities)
		facilities.POST("", authed, adminOnly, handler.CreateFacility)
		facilities.PUT("/:id", authed, adminOnly, handler.UpdateFacility)
		facilities.DELETE("/:id", authed, adminOnly, handler.DeleteFacility)

		rooms := apiGroup.Group("/rooms")
		rooms.GET("", handler.GetRooms)
		rooms.POST("", authed, adminOnly, handler.CreateRoom)
		rooms.PUT("/:id", authed, adminOnly, handler.UpdateRoom)
		rooms.DELETE("/:id", authed, adminOnly, handler.DeleteRoom)
		rooms.POST("/images", authed, adminOnly, handler.UploadRoomImages)
		rooms.DELETE("/images", authed, adminOnly, handler.DeleteRoomImage)

		bookings := apiGroup.Group("/bookings", authed)
		bookings.GET("", handler.GetBookings)
		bookings.GET("/:id/payments", handler.GetBookingPayments)
		bookings.POST("", handler.CreateBooking)
		bookings.PUT("/:id", adminOnly, handler.UpdateBooking)
		bookings.DELETE("/:id", adminOnly, handler.DeleteBooking)
		bookings.POST("/:id/checkout", adminOnly, handler.CheckoutBooking)

		payments := apiGroup.Group("/payments", authed)
		payments.GET("", handler.GetPayments)
		payments.POST("", adminOnly, handler.CreatePayment)
		payments.PUT("/:id", adminOnly, handler.UpdatePayment)
		payments.POST("/:id/pay", handler.PayPayment)
		payments.GET("/:id/receipt", handler.GetPaymentReceipt)

		apiGroup.GET("/history", authed, handler.GetHistory)
		apiGroup.GET("/stats", authed, handler.GetStats)

		apiGroup.POST("/checkout", authed, handler.CreateCheckout)

		// provider callback authenticates via x-callback-token, not JWT
		apiGroup.POST("/webhook/xendit", handler.XenditWebhook)
	}

	return r
}

func corsMiddleware(env intconfig.Env) gin.HandlerFunc {
	cfg := cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000", "http://127.0.0.1:3000",
			"http://localhost:5173", "http://127.0.0.1:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID", "x-callback-token"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
	if origins := strings.TrimSpace(env.CORSAllowedOrigins); origins != "" {
		cfg.AllowOrigins = splitCSV(origins)
	}
	return cors.New(cfg)
}

func splitCSV(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
