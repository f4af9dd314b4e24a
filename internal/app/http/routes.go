package routes

import (
	"artifolio/config"
	authapi "artifolio/internal/api/auth"
	challengesapi "artifolio/internal/api/challenges"
	commentsapi "artifolio/internal/api/comments"
	worksapi "artifolio/internal/api/works"
	"artifolio/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/uploads", config.UPLOAD_DIR)

	public := r.Group("/")
	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	if config.GoogleEnabled() {
		public.GET("/auth/google", authapi.GoogleStart)
		public.GET("/auth/google/callback", authapi.GoogleCallback)
	}

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", authapi.Me)
	auth.POST("/change-password", authapi.ChangePassword)
	auth.GET("/techniques/", worksapi.ListTechniques)
	auth.GET("/stats/", worksapi.GetStats)

	// ✅ user-authored text is sanitized before binding
	content := auth.Group("/")
	content.Use(middleware.SanitizeAndCleanInputMiddleware())

	content.GET("/artworks/", worksapi.ListArtworksHandler)
	content.POST("/artworks/create/", worksapi.CreateArtwork)
	content.GET("/artworks/:id/", worksapi.GetArtwork)
	content.POST("/artworks/:id/edit/", worksapi.UpdateArtwork)
	content.POST("/artworks/:id/delete", worksapi.DeleteArtworkHandler)

	content.POST("/artworks/:id/comment/", commentsapi.AddComment)
	content.POST("/comments/:id/delete/", commentsapi.DeleteComment)

	content.GET("/challenges/", challengesapi.ListChallenges)
	content.POST("/challenges/create/", challengesapi.CreateChallenge)
	content.POST("/challenges/:id/complete/", challengesapi.CompleteChallenge)
}
