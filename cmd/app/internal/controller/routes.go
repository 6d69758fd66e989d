package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripify-backend/internal/service"
	"tripify-backend/pkg/middleware"
	"tripify-backend/utilities"
)

func RegisterRoutes(
	r *gin.Engine,
	basePath string,
	authService service.AuthService,
	moodService service.MoodService,
	tokens *utilities.JWTManager,
	limiter *middleware.IPRateLimiter,
) {
	api := r.Group(basePath)
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Auth routes.
	authCtrl := NewAuthController(authService)
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/signup", authCtrl.Signup)
		authRoutes.POST("/login", authCtrl.Login)
		authRoutes.POST("/refresh", authCtrl.Refresh)
		authRoutes.GET("/users/:email", authCtrl.GetUser)
	}

	// Quiz routes. A bearer token is optional; when present it decides whose results these are.
	quizCtrl := NewQuizController(moodService)
	quizRoutes := api.Group("/quiz", utilities.OptionalAuthMiddleware(tokens))
	{
		quizRoutes.GET("/questions", quizCtrl.GetQuestions)
		quizRoutes.POST("/calculate-mood", middleware.RateLimitMiddleware(limiter), quizCtrl.CalculateMood)
		quizRoutes.GET("/mood-history/:user_id", quizCtrl.GetMoodHistory)
		quizRoutes.GET("/mood-history/:user_id/overview", quizCtrl.GetOverview)
		quizRoutes.GET("/mood-history/:user_id/report", quizCtrl.DownloadReport)
		quizRoutes.GET("/mood/latest/:user_id", quizCtrl.GetLatestMood)
	}
}
