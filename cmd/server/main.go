package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workspace-task-api/internal/config"
	"github.com/yukikurage/workspace-task-api/internal/database"
	"github.com/yukikurage/workspace-task-api/internal/scheduler"
	"github.com/yukikurage/workspace-task-api/internal/server"
	"github.com/yukikurage/workspace-task-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Setup session store with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	svc := server.NewServices(database.GetDB(), aiService)

	// Due-soon reminders are disabled unless a schedule is configured
	if cfg.DueSoonSchedule != "" {
		window := time.Duration(cfg.DueSoonWindowDays) * 24 * time.Hour
		sched := scheduler.New(svc.Notification, window)
		if err := sched.Start(cfg.DueSoonSchedule); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	r := server.NewRouter(server.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		SessionStore:   store,
	}, svc)

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
