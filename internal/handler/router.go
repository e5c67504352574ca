package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/middleware"
	"github.com/yourusername/quiz-api/internal/storage"
)

// Handlers - все обработчики API
type Handlers struct {
	Auth     *AuthHandler
	Location *LocationHandler
	Question *QuestionHandler
	Book     *BookHandler
	Score    *ScoreHandler
	User     *UserHandler
	Stats    *StatsHandler
}

// RouterOptions - параметры сборки роутера
type RouterOptions struct {
	AllowedOrigins []string
	UploadDir      string
	TrustedProxies []string
	// LoginLimiter ограничивает POST /api/auth/login, nil - без лимита
	LoginLimiter gin.HandlerFunc
}

// NewRouter собирает gin.Engine со всеми маршрутами API
func NewRouter(h Handlers, authMiddleware *middleware.AuthMiddleware, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		log.Printf("[Router] Warning: failed to set trusted proxies: %v", err)
	}

	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.UploadDir != "" {
		router.Static(storage.URLPrefix, opts.UploadDir)
	}

	requireAuth := authMiddleware.RequireAuth()
	adminOnly := authMiddleware.AdminOnly()

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			login := []gin.HandlerFunc{h.Auth.Login}
			if opts.LoginLimiter != nil {
				login = append([]gin.HandlerFunc{opts.LoginLimiter}, login...)
			}
			authGroup.POST("/login", login...)
			authGroup.GET("/me", requireAuth, h.Auth.GetMe)
		}

		api.GET("/locations", h.Location.ListLocations)
		api.POST("/locations", requireAuth, adminOnly, h.Location.CreateLocation)
		api.GET("/categories", h.Location.ListCategories)
		api.POST("/categories", requireAuth, adminOnly, h.Location.CreateCategory)

		questions := api.Group("/questions")
		{
			questionID := middleware.ExtractUintParam("id", "questionID")
			questions.GET("", h.Question.ListQuestions)
			questions.GET("/:id", questionID, h.Question.GetQuestion)
			questions.POST("", requireAuth, adminOnly, h.Question.CreateQuestion)
			questions.PUT("/:id", requireAuth, adminOnly, questionID, h.Question.UpdateQuestion)
			questions.DELETE("/:id", requireAuth, adminOnly, questionID, h.Question.DeleteQuestion)
		}

		api.GET("/books", h.Book.ListBooks)
		api.POST("/books", requireAuth, adminOnly, h.Book.UploadBook)

		quiz := api.Group("/quiz", requireAuth)
		{
			quiz.POST("/save", h.Score.SaveQuiz)
			quiz.GET("/scores", h.Score.GetUserScores)
			quiz.GET("", adminOnly, h.Score.GetAllScores)
			quiz.GET("/export", adminOnly, h.Score.ExportScores)
		}

		quizScores := api.Group("/quiz-scores")
		{
			quizScores.POST("/save", requireAuth, h.Score.SaveQuizScore)
			quizScores.GET("/user-scores", requireAuth, h.Score.GetUserScores)
			quizScores.GET("/leaderboard", h.Score.GetLeaderboard)
			quizScores.GET("/user-stats", requireAuth, h.Score.GetUserStats)
		}

		users := api.Group("/user", requireAuth, adminOnly)
		{
			userID := middleware.ExtractUintParam("id", "userID")
			users.POST("/create-user", h.User.CreateUser)
			users.GET("/get-users", h.User.ListUsers)
			users.PUT("/users/:id", userID, h.User.UpdateUser)
			users.DELETE("/users/:id", userID, h.User.DeleteUser)
		}

		api.GET("/admin/stats", requireAuth, adminOnly, h.Stats.GetDashboardStats)
	}

	return router
}
