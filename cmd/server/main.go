package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/Arvin-Samuel-A/EnviroHelp/internal/config"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/handler"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/httpserver"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/repository"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/service/auth"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/service/campaign"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/service/directory"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/service/matching"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/service/negotiation"
	"github.com/Arvin-Samuel-A/EnviroHelp/pkg/db"
	"github.com/Arvin-Samuel-A/EnviroHelp/pkg/logger"
	"github.com/Arvin-Samuel-A/EnviroHelp/pkg/mq"
	redisclient "github.com/Arvin-Samuel-A/EnviroHelp/pkg/redis"
	"github.com/Arvin-Samuel-A/EnviroHelp/pkg/util"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	rdb := redisclient.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("failed to init publisher", zap.Error(err))
	}
	defer publisher.Close()

	// Repositories
	loginRepo := repository.NewLoginRepository(dbConn)
	volunteerRepo := repository.NewVolunteerRepository(dbConn)
	campaignerRepo := repository.NewCampaignerRepository(dbConn)
	campaignRepo := repository.NewCampaignRepository(dbConn)
	requestRepo := repository.NewRequestRepository(dbConn)

	// Services
	limiter := util.NewLimiter(rdb, 10, time.Minute, log)
	authService := auth.NewService(loginRepo, volunteerRepo, campaignerRepo, limiter, cfg.JWT.Secret)
	campaignService := campaign.NewService(campaignRepo, publisher, log)
	negotiationService := negotiation.NewService(requestRepo, campaignRepo, volunteerRepo, publisher, log)
	matchingService := matching.NewService(campaignRepo, requestRepo, log)
	directoryService := directory.NewService(campaignRepo, volunteerRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, log)
	volunteerHandler := handler.NewVolunteerHandler(negotiationService, campaignService, matchingService, directoryService, log)
	campaignerHandler := handler.NewCampaignerHandler(negotiationService, campaignService, matchingService, directoryService, log)

	router := httpserver.NewRouter(authService, authHandler, volunteerHandler, campaignerHandler, dbConn, log)

	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatal("server start failed", zap.Error(err))
	}
}
