package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hairrent_back_end/internal/config"
	"hairrent_back_end/internal/database"
	"hairrent_back_end/internal/routes"
	"hairrent_back_end/internal/services"
)

func main() {
	config.Load()

	// Pas de secret ni de credentials par défaut : on refuse de démarrer sans
	config.MustGet("JWT_SECRET")
	config.MustGet("ADMIN_USERNAME")
	config.MustGet("ADMIN_PASSWORD_HASH")

	database.ConnectDatabases()
	defer database.CloseScylla()

	// Rejeu des notifications échouées
	services.StartOutboxWorker()

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.Get("FRONTEND_URL", "http://localhost:3000")}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Hair Rent lancé sur le port", port)
	r.Run(":" + port)
}
