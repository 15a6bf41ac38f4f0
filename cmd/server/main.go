package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"examengine/internal/config"
	"examengine/internal/database"
	"examengine/internal/handlers"
	"examengine/internal/repository"
	"examengine/internal/security"
	"examengine/internal/selection"
	"examengine/internal/service"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	deckRepo := repository.NewDeckRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	dailyRepo := repository.NewDailyTestRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	// Initialize services
	tokens := security.NewTokenManager(cfg.JWTSecret, cfg.TokenDuration)
	limiter := security.NewRateLimiter(10, time.Minute)
	engine := selection.New(nil)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	authService := service.NewAuthService(userRepo, tokens, emailService)
	progressService := service.NewProgressService(progressRepo)
	attemptService := service.NewAttemptService(attemptRepo, questionRepo, progressService)
	deckService := service.NewDeckService(deckRepo, questionRepo, progressService, engine)
	flashcardService := service.NewFlashcardService(attemptRepo, deckRepo, attemptService, engine)
	testService := service.NewTestService(attemptRepo, questionRepo, attemptService, engine)
	dailyService := service.NewDailyService(dailyRepo, attemptRepo, questionRepo, attemptService, engine)
	importService := service.NewImportService(db, questionRepo, deckRepo)

	// Seed the admin account from configuration
	if err := authService.SeedAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Printf("Warning: Failed to seed admin account: %v", err)
	}

	oauthProviders := map[string]handlers.OAuthProvider{
		"google": {
			Name:  "google",
			Label: "Google",
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				Scopes:       []string{"openid", "email", "profile"},
			},
			UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		},
		"facebook": {
			Name:  "facebook",
			Label: "Facebook",
			Config: &oauth2.Config{
				ClientID:     cfg.FacebookClientID,
				ClientSecret: cfg.FacebookClientSecret,
				Endpoint:     facebook.Endpoint,
				Scopes:       []string{"email", "public_profile"},
			},
			UserInfoURL: "https://graph.facebook.com/me?fields=id,email",
		},
	}

	// Initialize handlers
	middleware := handlers.NewMiddleware(tokens, limiter)
	authHandler := handlers.NewAuthHandler(authService, oauthProviders, cfg.OAuthRedirectBaseURL)
	deckHandler := handlers.NewDeckHandler(deckService)
	flashcardHandler := handlers.NewFlashcardHandler(flashcardService)
	testHandler := handlers.NewTestHandler(testService)
	dailyHandler := handlers.NewDailyHandler(dailyService)
	statsHandler := handlers.NewStatsHandler(attemptRepo, progressService)
	adminHandler := handlers.NewAdminHandler(importService, emailService, questionRepo, userRepo, cfg.AdminEmail, cfg.UploadMaxSize)

	// Setup routes
	mux := http.NewServeMux()

	// Auth routes
	mux.HandleFunc("POST /auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("GET /auth/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("GET /auth/{provider}/start", authHandler.StartOAuth)
	mux.HandleFunc("GET /auth/{provider}/callback", authHandler.OAuthCallback)

	// Deck routes
	mux.HandleFunc("GET /decks", middleware.RequireAuth(deckHandler.List))
	mux.HandleFunc("GET /decks/{id}", middleware.RequireAuth(deckHandler.Detail))
	mux.HandleFunc("PATCH /decks/{id}/mark-viewed", middleware.RequireAuth(deckHandler.MarkViewed))
	mux.HandleFunc("GET /decks/{id}/results", middleware.RequireAuth(deckHandler.Results))
	mux.HandleFunc("POST /decks/generate", middleware.RequireAuth(deckHandler.Generate))

	// Flashcard session routes
	mux.HandleFunc("POST /flashcards/start/{deckID}", middleware.RequireAuth(flashcardHandler.Start))
	mux.HandleFunc("GET /flashcards/next/{attemptID}", middleware.RequireAuth(flashcardHandler.Next))
	mux.HandleFunc("POST /flashcards/answer", middleware.RequireAuth(flashcardHandler.Answer))

	// Full test routes
	mux.HandleFunc("POST /tests/start", middleware.RequireAuth(testHandler.Start))
	mux.HandleFunc("POST /tests/answer", middleware.RequireAuth(testHandler.Answer))
	mux.HandleFunc("POST /tests/submit/{attemptID}", middleware.RequireAuth(testHandler.Submit))
	mux.HandleFunc("GET /tests/history", middleware.RequireAuth(testHandler.History))

	// Daily test routes
	mux.HandleFunc("POST /daily/start", middleware.RequireAuth(dailyHandler.Start))
	mux.HandleFunc("POST /daily/answer", middleware.RequireAuth(dailyHandler.Answer))
	mux.HandleFunc("POST /daily/submit/{attemptID}", middleware.RequireAuth(dailyHandler.Submit))

	// Stats routes
	mux.HandleFunc("GET /stats/me", middleware.RequireAuth(statsHandler.Me))

	// Admin routes
	mux.HandleFunc("POST /admin/import", middleware.RequireAdmin(adminHandler.Import))
	mux.HandleFunc("GET /admin/bank-stats", middleware.RequireAdmin(adminHandler.BankStats))
	mux.HandleFunc("DELETE /decks/{id}", middleware.RequireAdmin(deckHandler.Deactivate))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}
