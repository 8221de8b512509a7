package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/anadolusms/smspanel/internal/config"
	"github.com/anadolusms/smspanel/internal/gateway"
	"github.com/anadolusms/smspanel/internal/models"
	"github.com/anadolusms/smspanel/internal/repository"
)

// reconcilerService folds gateway delivery reports into campaign rollups.
// Two paths feed it: the periodic sweep over all pending campaigns, and a
// per-campaign timer chain armed right after a dispatch ack. A campaign has
// at most one pending timer, which serializes its updates by construction.
type reconcilerService struct {
	cfg         *config.Config
	repo        repository.Repository
	gateway     *gateway.Client
	redisClient *redis.Client
	logger      *zap.Logger

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

func NewReconcilerService(
	cfg *config.Config,
	repo repository.Repository,
	gatewayClient *gateway.Client,
	redisClient *redis.Client,
	logger *zap.Logger,
) ReconcilerService {
	return &reconcilerService{
		cfg:         cfg,
		repo:        repo,
		gateway:     gatewayClient,
		redisClient: redisClient,
		logger:      logger,
		timers:      make(map[string]*time.Timer),
	}
}

// ScheduleFirstCheck arms the first delivery-report check for a freshly
// dispatched campaign, then the chain reschedules itself until the campaign
// completes or its horizon elapses.
func (s *reconcilerService) ScheduleFirstCheck(campaignID string) {
	deadline := time.Now().Add(time.Duration(s.cfg.Reconciler.CampaignHorizonHours) * time.Hour)
	delay := time.Duration(s.cfg.Reconciler.FirstCheckMinutes) * time.Minute
	s.schedule(campaignID, delay, deadline)
}

func (s *reconcilerService) schedule(campaignID string, delay time.Duration, deadline time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	if _, exists := s.timers[campaignID]; exists {
		// One pending timer per campaign.
		return
	}

	s.timers[campaignID] = time.AfterFunc(delay, func() {
		s.runScheduledCheck(campaignID, deadline)
	})
}

func (s *reconcilerService) runScheduledCheck(campaignID string, deadline time.Time) {
	s.mu.Lock()
	delete(s.timers, campaignID)
	stopped := s.stopped
	s.mu.Unlock()

	if stopped {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(s.cfg.Gateway.ReportTimeout+5)*time.Second)
	defer cancel()

	status := s.reconcileByID(ctx, campaignID)

	if status == models.CampaignStatusSending && time.Now().Before(deadline) {
		recheck := time.Duration(s.cfg.Reconciler.RecheckMinutes) * time.Minute
		s.schedule(campaignID, recheck, deadline)
	}
}

// Sweep reconciles a bounded batch of the oldest pending campaigns, pacing
// the gateway between campaigns. Fetch failures are logged and skipped; the
// sweep itself only fails on storage errors.
func (s *reconcilerService) Sweep(ctx context.Context) error {
	cutoff := time.Now().Add(-time.Duration(s.cfg.Reconciler.SweepHorizonHours) * time.Hour)

	campaigns, err := s.repo.Campaign().ListReconcilable(ctx, cutoff, s.cfg.Reconciler.SweepBatchSize)
	if err != nil {
		return fmt.Errorf("failed to list reconcilable campaigns: %w", err)
	}

	if len(campaigns) == 0 {
		s.logger.Debug("No campaigns awaiting reconciliation")
		return nil
	}

	s.logger.Info("Reconciliation sweep started", zap.Int("campaigns", len(campaigns)))

	pacing := time.Duration(s.cfg.Reconciler.PacingSeconds) * time.Second
	for i, campaign := range campaigns {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pacing):
			}
		}

		s.reconcileOnce(ctx, campaign)
	}

	return nil
}

// ReconcileCampaign runs one opportunistic pass for a single campaign and
// returns its fresh state. Used by the delivery-report endpoint so callers
// see the most recent counts the gateway will give us.
func (s *reconcilerService) ReconcileCampaign(ctx context.Context, campaignID string) (*models.Campaign, error) {
	campaign, err := s.repo.Campaign().GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	if campaign.Status == models.CampaignStatusSending && campaign.ReportID.Valid {
		s.reconcileOnce(ctx, campaign)

		campaign, err = s.repo.Campaign().GetByID(ctx, campaignID)
		if err != nil {
			return nil, err
		}

		s.logger.Debug("Delivery report progress",
			zap.String("campaignID", campaign.ID),
			zap.Int("reported", campaign.ReportedCount()),
			zap.Int("dispatched", campaign.SuccessfulSends))
	}

	return campaign, nil
}

// Stop cancels all pending per-campaign timers. Campaigns still in sending
// are picked up again by the sweep after restart.
func (s *reconcilerService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

func (s *reconcilerService) reconcileByID(ctx context.Context, campaignID string) models.CampaignStatus {
	campaign, err := s.repo.Campaign().GetByID(ctx, campaignID)
	if err != nil {
		s.logger.Warn("Failed to load campaign for reconciliation",
			zap.String("campaignID", campaignID),
			zap.Error(err))
		return ""
	}

	if campaign.Status != models.CampaignStatusSending || !campaign.ReportID.Valid {
		return campaign.Status
	}

	return s.reconcileOnce(ctx, campaign)
}

// reconcileOnce fetches the report and applies it. Every failure mode is
// "no update this cycle": logged, never propagated, never a reason to stop
// polling the campaign.
func (s *reconcilerService) reconcileOnce(ctx context.Context, campaign *models.Campaign) models.CampaignStatus {
	snapshot, err := s.gateway.FetchReport(ctx, s.reportAPIKey(ctx, campaign.TenantID), campaign.ReportID.String)
	if err != nil {
		s.logger.Warn("Delivery report fetch failed, skipping cycle",
			zap.String("campaignID", campaign.ID),
			zap.String("reportID", campaign.ReportID.String),
			zap.Error(err))
		return campaign.Status
	}

	status, err := s.repo.Campaign().ApplyReconciliation(ctx, campaign.ID, snapshot,
		s.cfg.Reconciler.CompletionThreshold)
	if err != nil {
		s.logger.Error("Failed to apply reconciliation",
			zap.String("campaignID", campaign.ID),
			zap.Error(err))
		return campaign.Status
	}

	s.cacheSnapshot(ctx, campaign.ID, snapshot)

	s.logger.Info("Campaign reconciled",
		zap.String("campaignID", campaign.ID),
		zap.Int("delivered", snapshot.Delivered),
		zap.Int("failed", snapshot.Failed),
		zap.Int("invalid", snapshot.Invalid),
		zap.Int("blocked", snapshot.Blocked),
		zap.String("status", string(status)))

	return status
}

func (s *reconcilerService) reportAPIKey(ctx context.Context, tenantID int64) string {
	tenant, err := s.repo.Tenant().GetByID(ctx, tenantID)
	if err != nil || !tenant.SMSAPIKey.Valid {
		return ""
	}
	return tenant.SMSAPIKey.String
}

// cacheSnapshot stores the latest snapshot in Redis, best-effort.
func (s *reconcilerService) cacheSnapshot(ctx context.Context, campaignID string, snapshot *models.ReportSnapshot) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return
	}

	key := fmt.Sprintf("report:%s", campaignID)
	ttl := time.Duration(s.cfg.Reconciler.SnapshotCacheTTLHours) * time.Hour

	if err := s.redisClient.Set(ctx, key, payload, ttl).Err(); err != nil {
		s.logger.Warn("Failed to cache report snapshot",
			zap.String("campaignID", campaignID),
			zap.Error(err))
	}
}
