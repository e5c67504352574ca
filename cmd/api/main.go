package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/config"
	"github.com/yourusername/quiz-api/internal/handler"
	"github.com/yourusername/quiz-api/internal/middleware"
	pgRepo "github.com/yourusername/quiz-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quiz-api/internal/repository/redis"
	"github.com/yourusername/quiz-api/internal/service"
	"github.com/yourusername/quiz-api/internal/storage"
	"github.com/yourusername/quiz-api/pkg/auth"
	"github.com/yourusername/quiz-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := config.Path()
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	isProduction := gin.Mode() == gin.ReleaseMode

	// Подключение к PostgreSQL и миграции
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), !isProduction)
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	if err := database.MigrateDB(db, database.DefaultMigrationsSource); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Репозитории
	userRepo := pgRepo.NewUserRepo(db)
	locationRepo := pgRepo.NewLocationRepo(db)
	categoryRepo := pgRepo.NewCategoryRepo(db)
	bookRepo := pgRepo.NewBookRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	scoreRepo := pgRepo.NewScoreRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	store, err := storage.NewLocalStore(cfg.Server.UploadDir)
	if err != nil {
		log.Printf("Failed to initialize upload storage: %v", err)
		os.Exit(1)
	}

	// Сервисы
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}
	authService, err := service.NewAuthService(userRepo, locationRepo, jwtService)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}

	var emailService service.EmailService = &service.NoopEmailService{}
	if cfg.Email.Enabled {
		resendService, err := service.NewResendEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.AppURL)
		if err != nil {
			log.Printf("Failed to initialize email service: %v", err)
			os.Exit(1)
		}
		emailService = resendService
	}

	handlers := handler.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Location: handler.NewLocationHandler(service.NewLocationService(locationRepo), service.NewCategoryService(categoryRepo)),
		Question: handler.NewQuestionHandler(service.NewQuestionService(questionRepo, locationRepo)),
		Book:     handler.NewBookHandler(service.NewBookService(bookRepo, categoryRepo, store)),
		Score:    handler.NewScoreHandler(service.NewScoreService(scoreRepo, locationRepo, cacheRepo, cfg.Cache.LeaderboardTTLDuration())),
		User:     handler.NewUserHandler(service.NewUserService(userRepo, emailService)),
		Stats:    handler.NewStatsHandler(service.NewStatsService(userRepo, questionRepo, locationRepo, scoreRepo)),
	}

	// Production: не доверяем прокси-заголовкам; development: доверяем localhost
	var trustedProxies []string
	if !isProduction {
		trustedProxies = []string{"127.0.0.1", "::1"}
	}

	rateLimiter := middleware.NewRateLimiter(redisClient)
	router := handler.NewRouter(handlers, middleware.NewAuthMiddleware(authService), handler.RouterOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		UploadDir:      store.Dir(),
		TrustedProxies: trustedProxies,
		LoginLimiter:   rateLimiter.Limit(middleware.LoginRateLimitConfig(cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindowDuration())),
	})

	// HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("Server exited properly")
}
