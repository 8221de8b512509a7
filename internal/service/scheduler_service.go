package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/anadolusms/smspanel/internal/config"
	"github.com/anadolusms/smspanel/internal/scheduler"
)

type schedulerService struct {
	scheduler  *scheduler.Scheduler
	reconciler ReconcilerService
	logger     *zap.Logger
}

func NewSchedulerService(
	cfg *config.Config,
	reconciler ReconcilerService,
	logger *zap.Logger,
) SchedulerService {
	interval := time.Duration(cfg.Reconciler.SweepIntervalMinutes) * time.Minute

	svc := &schedulerService{
		reconciler: reconciler,
		logger:     logger,
	}

	svc.scheduler = scheduler.NewScheduler(logger, interval, svc.executeSweepTask)
	return svc
}

func (s *schedulerService) Start() error {
	ctx := context.Background()
	return s.scheduler.Start(ctx)
}

func (s *schedulerService) Stop() error {
	return s.scheduler.Stop()
}

func (s *schedulerService) IsRunning() bool {
	return s.scheduler.IsRunning()
}

func (s *schedulerService) executeSweepTask(ctx context.Context) error {
	return s.reconciler.Sweep(ctx)
}
