package main

import (
	"log"
	"time"

	"artifolio/config"
	"artifolio/database"
	routes "artifolio/internal/app/http"
	"artifolio/internal/app/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()
	database.InitDB()

	r := gin.Default()
	r.MaxMultipartMemory = int64(config.MAX_UPLOAD_MB) << 20

	// ✅ Add CORS middleware BEFORE registering routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.Metrics())

	routes.RegisterRoutes(r)

	log.Printf("🚀 ArtiFolio listening on :%s", config.PORT)
	if err := r.Run(":" + config.PORT); err != nil {
		log.Fatalf("❌ server stopped: %v", err)
	}
}
