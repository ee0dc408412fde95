package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"google.golang.org/genai"

	database "github.com/travelmind-ai/travelmind-server/app/db"
	appLogger "github.com/travelmind-ai/travelmind-server/app/logger"
	appmetrics "github.com/travelmind-ai/travelmind-server/app/observability/metrics"
	"github.com/travelmind-ai/travelmind-server/app/tracer"
	"github.com/travelmind-ai/travelmind-server/config"
	"github.com/travelmind-ai/travelmind-server/internal/api/feedback"
	generativeAI "github.com/travelmind-ai/travelmind-server/internal/api/generative_ai"
	"github.com/travelmind-ai/travelmind-server/internal/api/influencer"
	"github.com/travelmind-ai/travelmind-server/internal/api/itinerary"
	"github.com/travelmind-ai/travelmind-server/internal/api/maps"
	"github.com/travelmind-ai/travelmind-server/internal/api/share"
	"github.com/travelmind-ai/travelmind-server/internal/api/youtube"
	"github.com/travelmind-ai/travelmind-server/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger(cfg.Mode)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Observability ---
	tracer.InitTracingAndMetrics(":9090")
	appmetrics.InitAppMetrics()
	m := appmetrics.Get()

	// --- Database Setup ---
	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}
	if err = database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}
	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()
	if !database.WaitForDB(ctx, pool, logger) {
		logger.Error("Database not ready after waiting, exiting.")
		os.Exit(1)
	}

	// --- Upstream Clients ---
	bqClient, err := bigquery.NewClient(ctx, cfg.GoogleCloud.ProjectID)
	if err != nil {
		logger.Error("Failed to create BigQuery client", slog.Any("error", err))
		os.Exit(1)
	}
	defer bqClient.Close()

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(cfg.AI.Temperature),
		TopP:            genai.Ptr(cfg.AI.TopP),
		TopK:            genai.Ptr(cfg.AI.TopK),
		MaxOutputTokens: cfg.AI.MaxOutputTokens,
	}
	aiClient, err := generativeAI.NewAIClient(ctx, cfg.GoogleCloud.ProjectID, cfg.GoogleCloud.Location, cfg.AI.Models, genCfg, logger)
	if err != nil {
		logger.Error("Failed to create generative AI client", slog.Any("error", err))
		os.Exit(1)
	}

	mapsClient, err := maps.NewClient(cfg.Maps.APIKey)
	if err != nil {
		logger.Error("Failed to create maps client", slog.Any("error", err))
		os.Exit(1)
	}

	ytClient, err := youtube.NewGoogleClient(ctx, cfg.YouTube.APIKey)
	if err != nil {
		logger.Error("Failed to create YouTube client", slog.Any("error", err))
		os.Exit(1)
	}

	// --- Dependency Injection ---
	influencerRepo := influencer.NewBigQueryRepository(bqClient, cfg.BigQuery.Dataset, cfg.BigQuery.InfluencerTable, logger)
	influencerService := influencer.NewServiceImpl(influencerRepo, logger)
	influencerHandler := influencer.NewInfluencerHandler(influencerService, logger)

	youtubeService := youtube.NewServiceImpl(ytClient, cfg.YouTube.CacheTTL, cfg.YouTube.MaxResults, m, logger)
	youtubeHandler := youtube.NewYouTubeHandler(youtubeService, logger)

	mapsService := maps.NewServiceImpl(mapsClient, cfg.Maps.NearbyRadiusM, cfg.Maps.MaxAttractions, logger)
	mapsHandler := maps.NewMapsHandler(mapsService, logger)

	itineraryService := itinerary.NewItineraryService(aiClient, influencerService, youtubeService, cfg.AI.BudgetMargin, m, logger)
	itineraryHandler := itinerary.NewItineraryHandler(itineraryService, logger)

	feedbackRepo := feedback.NewBigQueryRepository(bqClient, cfg.BigQuery.Dataset, cfg.BigQuery.FeedbackTable, logger)
	feedbackService := feedback.NewServiceImpl(feedbackRepo, logger)
	feedbackHandler := feedback.NewFeedbackHandler(feedbackService, logger)

	shareRepo := share.NewPostgresShareRepository(pool, logger)
	shareService := share.NewServiceImpl(shareRepo, logger)
	shareHandler := share.NewShareHandler(shareService, logger)

	// --- Router Setup ---
	mainRouter := router.SetupRouter(&router.Config{
		ItineraryHandler:  itineraryHandler,
		MapsHandler:       mapsHandler,
		YouTubeHandler:    youtubeHandler,
		InfluencerHandler: influencerHandler,
		FeedbackHandler:   feedbackHandler,
		ShareHandler:      shareHandler,
	})

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(cfg.Server.Timeout))
	mux.Use(middleware.Compress(5, "application/json"))
	mux.Mount("/", mainRouter)

	// --- HTTP Server Setup ---
	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 2 * time.Minute, // generation calls can run long
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, starting graceful shutdown...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger(mode string) *slog.Logger {
	var logger *slog.Logger
	if mode == "development" || mode == "" {
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: false,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
