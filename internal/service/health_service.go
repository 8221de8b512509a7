package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/anadolusms/smspanel/internal/repository"
)

type healthService struct {
	repo             repository.Repository
	redisClient      *redis.Client
	schedulerService SchedulerService
	dispatchService  DispatchService
}

func NewHealthService(
	repo repository.Repository,
	redisClient *redis.Client,
	schedulerService SchedulerService,
	dispatchService DispatchService,
) HealthService {
	return &healthService{
		repo:             repo,
		redisClient:      redisClient,
		schedulerService: schedulerService,
		dispatchService:  dispatchService,
	}
}

func (s *healthService) GetHealth() *HealthStatus {
	status := &HealthStatus{
		Status:    StatusHealthy,
		Timestamp: time.Now(),
	}

	status.SchedulerRunning = s.schedulerService.IsRunning()
	status.DatabaseStatus = s.checkDatabaseHealth()
	status.RedisStatus = s.checkRedisHealth()

	state, requests, failures := s.dispatchService.GetCircuitBreakerStatus()
	status.CircuitBreakerState = state
	if requests > 0 {
		failureRate := float64(failures) / float64(requests) * 100
		status.CircuitBreakerStatus = fmt.Sprintf("Requests: %d, Failures: %d (%.1f%%)", requests, failures, failureRate)
	} else {
		status.CircuitBreakerStatus = "No requests yet"
	}

	// Determine overall health
	if status.DatabaseStatus != StatusConnected || status.RedisStatus != StatusConnected {
		status.Status = StatusUnhealthy
	}

	// If circuit breaker is open, set status to degraded
	if state == CircuitOpen && status.Status == StatusHealthy {
		status.Status = StatusDegraded
	}

	return status
}

func (s *healthService) checkDatabaseHealth() ComponentStatus {
	err := s.repo.Ping()
	if err != nil {
		return StatusDisconnected
	}
	return StatusConnected
}

func (s *healthService) checkRedisHealth() ComponentStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		return StatusDisconnected
	}

	return StatusConnected
}
