package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"docforensics/internal/cache"
	"docforensics/internal/config"
	"docforensics/internal/handler"
	"docforensics/internal/port"
	"docforensics/internal/repository/postgres"
	"docforensics/internal/router"
	"docforensics/internal/service"
	s3storage "docforensics/internal/storage/s3"

	_ "docforensics/docs"
	_ "docforensics/internal/analyzer/azure"
	_ "docforensics/internal/analyzer/bedrock"
	_ "docforensics/internal/analyzer/google"
	_ "docforensics/internal/analyzer/openai"
)

// @title Document Forensics API
// @version 1.0
// @description Forensic tampering analysis of document images via multimodal AI providers
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.InitLogger(cfg.Log); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	analysisRepo := postgres.NewAnalysisRepo(db)
	credentialStore := postgres.NewCredentialRepo(db)

	// Initialize storage (optional)
	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewArchiveClient(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	} else {
		zap.L().Info("S3 bucket not configured, image archiving disabled")
	}

	// Initialize result cache (optional)
	var results port.ResultCache
	if cfg.Redis.URL != "" {
		results, err = cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("failed to initialize redis cache: %w", err)
		}
	} else {
		zap.L().Info("redis not configured, result caching disabled")
	}

	// Initialize services
	analysisSvc := service.NewAnalysisService(analysisRepo, credentialStore, storage, results, cfg)
	credentialSvc := service.NewCredentialService(credentialStore)

	// Initialize handlers
	analysisH := handler.NewAnalysisHandler(analysisSvc)
	credentialH := handler.NewCredentialHandler(credentialSvc)
	healthH := handler.NewHealthHandler(db, results)

	// Setup router
	r := router.Setup(cfg, analysisH, credentialH, healthH)

	zap.L().Info("server starting", zap.String("addr", cfg.Server.Port))
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
