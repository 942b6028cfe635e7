package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"spotfolio/internal/config"
	"spotfolio/internal/handlers"
	"spotfolio/internal/identity"
	"spotfolio/internal/middleware"
	"spotfolio/internal/places"
	"spotfolio/internal/repository"
	"spotfolio/internal/service"
	"spotfolio/internal/storage"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Temporary logger until the config decides level and format.
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	if err := config.LoadConfig("./configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...", slog.String("app", config.Cfg.App.Name), slog.String("version", config.AppVersion))

	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// External clients
	identityClient := identity.NewClient(config.Cfg.Identity.BaseURL, config.Cfg.Identity.PublishableKey, &http.Client{Timeout: 10 * time.Second})
	placesClient := places.NewClient(config.Cfg.Places.BaseURL, config.Cfg.Places.APIKey, &http.Client{Timeout: 10 * time.Second})
	mediaStore := storage.NewS3Store(&config.Cfg)

	// Dependency injection
	profileRepo := repository.NewGormProfileRepository()
	playlistRepo := repository.NewGormPlaylistRepository()
	userRepo := repository.NewGormUserRepository()

	accountService := service.NewAccountService(db, identityClient, profileRepo)
	profileService := service.NewProfileService(db, profileRepo, playlistRepo, mediaStore)
	spotService := service.NewSpotService(placesClient)
	userService := service.NewUserService(db, userRepo)

	authHandler := handlers.NewAuthHandler(accountService)
	profileHandler := handlers.NewProfileHandler(accountService, profileService)
	pageHandler := handlers.NewPageHandler(profileService)
	spotHandler := handlers.NewSpotHandler(spotService)
	userHandler := handlers.NewUserHandler(userService)

	// Router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Auth callback (public, redirect-only)
	r.Get("/auth/callback", authHandler.Callback)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public
		r.Get("/spots/search", spotHandler.SearchSpots)
		r.Post("/user", userHandler.CreateUser)
		r.Get("/user", userHandler.GetUser)

		// Session-scoped
		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionAuthMiddleware(&config.Cfg))

			r.Post("/profile", profileHandler.CompleteProfile)
			r.Put("/profile", profileHandler.UpdateProfile)
			r.Get("/profile", profileHandler.GetMyProfile)

			r.Post("/auth/resend", authHandler.ResendConfirmation)
			r.Post("/auth/signout", authHandler.SignOut)
		})
	})

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Public profile pages. Registered last so fixed routes win.
	r.Get("/{username}", pageHandler.GetProfilePage)

	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
