package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/scrimtrack/scrim-stats-service/internal/config"
	"github.com/scrimtrack/scrim-stats-service/internal/handler"
	"github.com/scrimtrack/scrim-stats-service/internal/logger"
	"github.com/scrimtrack/scrim-stats-service/internal/repository/scrimapi"
	"github.com/scrimtrack/scrim-stats-service/internal/service"
)

func main() {
	// Load application config
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	// Backend API client implements every fetch contract
	client := scrimapi.New(scrimapi.Config{
		BaseURL: cfg.Backend.BaseURL,
		Token:   cfg.Backend.Token,
		Timeout: cfg.Backend.Timeout,
	}, appLogger)

	aggregator := service.NewAggregator(client.Matches(), client.Stats(), client.Players(), client.Teams(), appLogger)
	statsSvc := service.NewStatisticsService(aggregator, client.Summaries(), cfg.Cache.TTL, appLogger)
	teamSvc := service.NewTeamService(client.Teams(), client.Players(), cfg.Cache.TTL, appLogger)

	if cfg.Logger.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	handler.Register(router, client, statsSvc, teamSvc)

	appLogger.Info().Str("addr", cfg.Server.Addr).Msg("🚀 Service started")
	if err := router.Run(cfg.Server.Addr); err != nil {
		appLogger.Fatal().Err(err).Msg("server stopped")
	}
}
