package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"catalog-api/internal/config"
	"catalog-api/internal/database"
	handler "catalog-api/internal/handler/http"
	"catalog-api/internal/logger"
	middleware_http "catalog-api/internal/middleware/http"
	"catalog-api/internal/repository"
	"catalog-api/internal/router"
	"catalog-api/internal/service"
	"catalog-api/internal/tracer"
	"catalog-api/internal/version"
)

func main() {
	globalCtx := context.Background()
	log := logger.Instance()
	cfg := config.Instance()

	log.Info(cfg.AppName,
		slog.String("version", version.Version),
		slog.String("commit", version.Commit),
		slog.String("buildTime", version.BuildTime),
	)

	// Initialize telemetry (OpenTelemetry + Pyroscope)
	shutdown, _ := tracer.Instance(globalCtx)
	defer shutdown()

	// Connect to MongoDB; without storage there is nothing to serve.
	db, err := database.Instance(globalCtx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Error("Failed to connect to MongoDB", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wiring
	productRepo := repository.NewProductRepository(db.Database)
	categoryRepo := repository.NewCategoryRepository(db.Database)

	indexCtx, cancel := context.WithTimeout(globalCtx, 10*time.Second)
	if err := productRepo.EnsureIndexes(indexCtx); err != nil {
		log.Warn("Failed to ensure product indexes", slog.String("error", err.Error()))
	}
	if err := categoryRepo.EnsureIndexes(indexCtx); err != nil {
		log.Warn("Failed to ensure category indexes", slog.String("error", err.Error()))
	}
	cancel()

	productService := service.NewProductService(productRepo)
	stockService := service.NewStockService(productRepo)
	reportService := service.NewReportService(productRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	healthService := service.NewHealthService(db.Client)

	productHandler := handler.NewProductHandler(productService, stockService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	reportHandler := handler.NewReportHandler(reportService)
	healthHandler := handler.NewHealthHandler(healthService)

	mux := router.New(productHandler, categoryHandler, reportHandler, healthHandler)

	// HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      middleware_http.Trace(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("HTTP server running", slog.String("addr", server.Addr))

	if err := server.ListenAndServe(); err != nil {
		log.Error("Server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
