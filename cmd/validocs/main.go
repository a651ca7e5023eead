package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"validocs/internal/api"
	"validocs/internal/api/handlers"
	"validocs/internal/docimage"
	"validocs/internal/service"
	"validocs/pkg/config"
	"validocs/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting validocs service")

	ctx := context.Background()

	llmService, err := service.NewLLMService(ctx, &cfg.Gemini, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}
	defer llmService.Close()

	renderer := docimage.NewRenderer(cfg.Pipeline.MaxImageDimension)
	llmTimeout := cfg.Gemini.Timeout

	// Pipeline stages
	preprocessService := service.NewPreprocessService(llmService, renderer, llmTimeout, appLogger)
	classificationService := service.NewClassificationService(llmService, llmTimeout, appLogger)
	extractionService := service.NewExtractionService(llmService, llmTimeout, appLogger)
	validationService := service.NewValidationService(appLogger)
	aggregationService := service.NewAggregationService(appLogger)

	pipelineService := service.NewPipelineService(
		preprocessService,
		classificationService,
		extractionService,
		validationService,
		aggregationService,
		renderer,
		cfg.Pipeline.MaxParallelDocuments,
		appLogger,
	)

	// Initialize handlers
	validationHandler := handlers.NewValidationHandler(pipelineService, appLogger)

	// Setup router
	app := api.SetupRouter(validationHandler, &cfg.Server)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
