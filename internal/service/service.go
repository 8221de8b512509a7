package service

import (
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/anadolusms/smspanel/internal/config"
	"github.com/anadolusms/smspanel/internal/gateway"
	"github.com/anadolusms/smspanel/internal/pricing"
	"github.com/anadolusms/smspanel/internal/repository"
)

type Service struct {
	Dispatch   DispatchService
	Reconciler ReconcilerService
	Scheduler  SchedulerService
	Admin      AdminService
	Health     HealthService
}

// NewService wires the service layer. An unknown pricing strategy name is a
// configuration error and fails construction.
func NewService(
	cfg *config.Config,
	repo repository.Repository,
	redisClient *redis.Client,
	logger *zap.Logger,
) (*Service, error) {
	pricingStrategy, err := pricing.NewStrategy(cfg.Pricing.Strategy, cfg.Pricing.BaseRate)
	if err != nil {
		return nil, err
	}

	gatewayClient := gateway.NewClient(cfg.Gateway, logger)

	reconcilerService := NewReconcilerService(cfg, repo, gatewayClient, redisClient, logger)
	dispatchService := NewDispatchService(cfg, repo, gatewayClient, pricingStrategy, reconcilerService, logger)
	schedulerService := NewSchedulerService(cfg, reconcilerService, logger)
	adminService := NewAdminService(repo, logger)
	healthService := NewHealthService(repo, redisClient, schedulerService, dispatchService)

	return &Service{
		Dispatch:   dispatchService,
		Reconciler: reconcilerService,
		Scheduler:  schedulerService,
		Admin:      adminService,
		Health:     healthService,
	}, nil
}
