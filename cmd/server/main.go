package main

import (
	"context"
	"errors"
	"fmt"
	"go-feedback-app/internal/auth"
	"go-feedback-app/internal/cache"
	"go-feedback-app/internal/config"
	"go-feedback-app/internal/data"
	"go-feedback-app/internal/handler"
	"go-feedback-app/internal/logger"
	"go-feedback-app/internal/middleware"
	"go-feedback-app/internal/service"
	"go-feedback-app/internal/storage"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/v2"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, os.Stdout)

	// --- Pre-flight Checks ---
	if cfg.Session.SecretKey == "" || cfg.Session.SecretKey == "CHANGE_ME_IN_PRODUCTION_SECRET!!" {
		log.Fatal(errors.New("session secret key not set"), "Please set a secure FEEDBACK_SESSION_SECRET_KEY environment variable.")
	}

	// --- Database Initialization and Migration ---
	log.Info("Applying database migrations...")
	if err := data.ApplyMigrations(cfg.DB.DSN, "migrations"); err != nil {
		log.Fatal(err, "Failed to apply migrations")
	}
	log.Info("Migrations applied successfully.")

	log.Info("Connecting to the database...")
	db, err := data.NewDB("mysql", cfg.DB.DSN)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()
	log.Info("Database connection successful.")

	// --- Session Management Setup ---
	sessionManager := scs.New()
	sessionManager.Store = mysqlstore.New(db.DB)
	sessionManager.Lifetime = time.Duration(cfg.Session.Lifetime) * time.Hour
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.Server.TLS.Enabled

	// --- Authentication and Authorization Setup ---
	log.Info("Initializing authentication and authorization...")
	var authenticator *auth.Authenticator
	if cfg.OIDC.IssuerURL != "" {
		authenticator, err = auth.NewAuthenticator(&cfg.OIDC)
		if err != nil {
			log.Fatal(err, "Failed to initialize authenticator")
		}
	} else {
		log.Warn("OIDC issuer not configured; provider login disabled.")
	}
	enforcer, err := auth.NewEnforcer("mysql", cfg.DB.DSN, "auth_model.conf")
	if err != nil {
		log.Fatal(err, "Failed to initialize enforcer")
	}
	auth.SeedDefaultPolicies(enforcer, log)
	log.Info("Auth components initialized and policies seeded.")

	// --- Cache Initialization ---
	log.Info("Initializing SQLite cache...")
	sideCache, err := cache.New(cfg.Cache)
	if err != nil {
		log.Fatal(err, "Failed to initialize cache")
	}
	defer sideCache.Close()
	if err := sideCache.PurgeExpired(); err != nil {
		log.Warn("Failed to purge expired cache entries at startup.")
	}
	log.Info("Cache initialized.")

	// --- Upload Storage ---
	store, err := storage.NewDiskStore(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatal(err, "Failed to initialize upload storage")
	}

	// --- Dependency Injection and Handler Initialization ---
	// Initialize the application layers, injecting dependencies from top to bottom.
	feedbackRepo := data.NewFeedbackRepository(db)
	upvoteRepo := data.NewUpvoteRepository(db)
	readRepo := data.NewReadRepository(db)
	boardRepo := data.NewBoardRepository(db)
	statusRepo := data.NewStatusRepository(db)
	commentRepo := data.NewCommentRepository(db)
	changelogRepo := data.NewChangelogRepository(db)
	userRepo := data.NewUserRepository(db)

	feedbackService := service.NewFeedbackService(feedbackRepo, upvoteRepo, readRepo, boardRepo, statusRepo, commentRepo)
	commentService := service.NewCommentService(commentRepo, feedbackRepo)
	changelogService := service.NewChangelogService(changelogRepo, store, sideCache)
	settingsService := service.NewSettingsService(boardRepo, statusRepo)
	accountService := service.NewAccountService(userRepo)

	publicHandler := handler.NewPublicHandler(feedbackService, commentService, changelogService, settingsService, log)
	adminHandler := handler.NewAdminHandler(feedbackService, commentService, settingsService, log)
	changelogHandler := handler.NewChangelogHandler(changelogService, adminHandler, log)
	settingsHandler := handler.NewSettingsHandler(settingsService, adminHandler, log)
	authHandler := handler.NewAuthHandler(accountService, sessionManager, authenticator, cfg.OIDC.ProviderName, log)

	// --- Router Setup ---
	// The router is the central hub that directs incoming requests to the correct handlers.
	router := handler.NewRouter(handler.RouterDeps{
		Public:      publicHandler,
		Admin:       adminHandler,
		Changelog:   changelogHandler,
		Settings:    settingsHandler,
		Auth:        authHandler,
		Session:     sessionManager.LoadAndSave,
		Authz:       middleware.Authorizer(enforcer, sessionManager),
		Error:       middleware.Error(log),
		UploadDir:   store.Dir(),
		OIDCEnabled: authenticator != nil,
	})

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		if cfg.Server.TLS.Enabled {
			log.Info(fmt.Sprintf("Starting HTTPS server on %s", server.Addr))
			if err := server.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTPS server")
			}
		} else {
			log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTP server")
			}
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}
