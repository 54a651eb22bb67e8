package routes

import (
	"hairrent_back_end/internal/handlers"
	"hairrent_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// --- Endpoints publics (boutique) ---
	api.GET("/products", handlers.GetProducts)
	api.GET("/products/search", handlers.SearchProducts)
	api.GET("/products/slug/:slug", handlers.GetProductBySlug)
	api.GET("/products/category/:slug", handlers.GetProductsByCategory)

	api.POST("/orders", handlers.CreateOrder)
	api.GET("/orders/:id", handlers.GetOrder)
	api.POST("/orders/:id/upload-pop", handlers.UploadPOP)

	api.POST("/requests", handlers.CreateRequest)

	api.POST("/auth/login", middleware.LoginRateLimit(), handlers.Login)
	api.POST("/auth/logout", handlers.Logout)

	// --- Endpoints admin (session obligatoire) ---
	admin := api.Group("", middleware.RequireSession())
	admin.GET("/orders", handlers.ListOrders)
	admin.PATCH("/orders/:id", handlers.UpdateOrderStatus)
	admin.POST("/orders/:id/reply", handlers.ReplyOrder)

	admin.GET("/requests", handlers.ListRequests)
	admin.GET("/requests/:id", handlers.GetRequest)
	admin.PATCH("/requests/:id", handlers.UpdateRequestStatus)
	admin.POST("/requests/:id/reply", handlers.ReplyRequest)

	admin.GET("/auth/me", handlers.Me)
	admin.GET("/admin/events", handlers.AdminEventsFeed)

	// --- Fichiers statiques ---
	// Preuves de paiement déposées sur disque local
	r.Static("/uploads", "./public/uploads")

	// Pages du back-office, derrière le garde-barrière de session
	pages := r.Group("/admin", middleware.SessionGate())
	pages.Static("/", "./public/admin")
}
