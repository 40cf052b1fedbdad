// cmd/main.go
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

	"trick_keeper/internal/config"
	"trick_keeper/internal/handlers"
	"trick_keeper/internal/middleware"
	"trick_keeper/internal/repository"
	"trick_keeper/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// 設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	// Configを読み込み
	if err := config.LoadConfig("./configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
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

	// 開発環境では色付きのtint、それ以外はJSONで出力する
	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	// Initialize Database Connection (GORM)
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

	// Dependency Injection
	userRepo := repository.NewGormUserRepository()
	categoryRepo := repository.NewGormCategoryRepository()
	trickRepo := repository.NewGormTrickRepository()
	completedRepo := repository.NewGormCompletedTrickRepository()
	wishlistRepo := repository.NewGormWishlistTrickRepository()
	goalRepo := repository.NewGormGoalRepository()

	userService := service.NewUserService(db, &config.Cfg, userRepo, completedRepo, wishlistRepo, goalRepo)
	categoryService := service.NewCategoryService(db, categoryRepo, trickRepo, completedRepo)
	trickService := service.NewTrickService(db, trickRepo, completedRepo, wishlistRepo)
	actionService := service.NewTrickActionService(db, completedRepo, wishlistRepo)
	goalService := service.NewGoalService(db, goalRepo, completedRepo)

	userHandler := handlers.NewUserHandler(userService, logger)
	categoryHandler := handlers.NewCategoryHandler(categoryService, logger)
	trickHandler := handlers.NewTrickHandler(trickService, logger)
	actionHandler := handlers.NewActionHandler(actionService, trickService, logger)
	goalHandler := handlers.NewGoalHandler(goalService, logger)

	// Setup Router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	// CORS 設定と適用 (設定ファイルから読み込んだ値を使用)
	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
		Debug:            false,
	}
	corsHandler := cors.New(corsOptions)
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Post("/auth/register", userHandler.Register)
		r.Post("/auth/login", userHandler.Login)
		r.Get("/users/{user_id}", userHandler.GetProfile)
		r.Get("/leaderboard", userHandler.GetLeaderboard)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.GetCategories)
			r.Post("/", categoryHandler.PostCategory)
			r.Get("/{category_id}", categoryHandler.GetCategory)
			r.Put("/{category_id}", categoryHandler.PutCategory)
			r.Delete("/{category_id}", categoryHandler.DeleteCategory)

			// カテゴリ統計は認証必須
			r.With(middleware.JWTAuthMiddleware(&config.Cfg)).
				Get("/stats", categoryHandler.GetAllCategoryStats)
			r.With(middleware.JWTAuthMiddleware(&config.Cfg)).
				Get("/{category_id}/stats", categoryHandler.GetCategoryStats)
		})

		r.Route("/tricks", func(r chi.Router) {
			// 一覧は任意認証（トークンがあれば達成・ウィッシュリストのフラグ付き）
			r.With(middleware.OptionalJWTAuthMiddleware(&config.Cfg)).
				Get("/", trickHandler.GetTricks)
			r.Post("/", trickHandler.PostTrick)
			r.Get("/{trick_id}", trickHandler.GetTrick)
			r.Put("/{trick_id}", trickHandler.PutTrick)
			r.Delete("/{trick_id}", trickHandler.DeleteTrick)
		})

		// --- Protected routes (require JWT) ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuthMiddleware(&config.Cfg))

			r.Route("/me", func(r chi.Router) {
				r.Get("/", userHandler.GetMe)
				r.Delete("/", userHandler.DeleteMe)
				r.Put("/image", userHandler.UpdateProfileImage)
			})

			r.Route("/completed-tricks", func(r chi.Router) {
				r.Get("/", actionHandler.GetCompletedTricks)
				r.Post("/", actionHandler.AddCompletedTrick)
				r.Delete("/", actionHandler.RemoveCompletedTrick)
			})

			r.Route("/wishlist-tricks", func(r chi.Router) {
				r.Get("/", actionHandler.GetWishlistTricks)
				r.Post("/", actionHandler.AddWishlistTrick)
				r.Delete("/", actionHandler.RemoveWishlistTrick)
			})

			r.Route("/goals", func(r chi.Router) {
				r.Get("/", goalHandler.GetGoals)
				r.Post("/", goalHandler.PostGoal)
				r.Patch("/{goal_id}", goalHandler.PatchGoal)
				r.Delete("/{goal_id}", goalHandler.DeleteGoal)
			})
		})
	})

	// Health Check
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

	// Start Server
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

	// Graceful Shutdown
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
