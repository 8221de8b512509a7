package service

import (
	"context"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/anadolusms/smspanel/internal/repository"
)

// maxSenderTitleLength is the gateway's limit on the sender label; longer
// titles are rejected upstream after credits are already spent, so they are
// refused here.
const maxSenderTitleLength = 11

type adminService struct {
	repo   repository.Repository
	logger *zap.Logger
}

func NewAdminService(repo repository.Repository, logger *zap.Logger) AdminService {
	return &adminService{
		repo:   repo,
		logger: logger,
	}
}

// AddBalance credits a tenant and records the deposit in the ledger.
func (s *adminService) AddBalance(ctx context.Context, tenantID, amount int64, description string) (int64, error) {
	if amount <= 0 {
		return 0, validationErrorf("amount must be positive (got %d)", amount)
	}

	if description == "" {
		description = "balance top-up"
	}

	newBalance, err := s.repo.Tenant().Credit(ctx, tenantID, amount, description, nil)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Tenant balance credited",
		zap.Int64("tenantID", tenantID),
		zap.Int64("amount", amount),
		zap.Int64("newBalance", newBalance))

	return newBalance, nil
}

// UpdateSMSSettings sets the tenant's gateway sender title and API key
// override. Empty values clear the override back to the shared defaults.
func (s *adminService) UpdateSMSSettings(ctx context.Context, tenantID int64, smsTitle, smsAPIKey string) error {
	if n := utf8.RuneCountInString(smsTitle); n > maxSenderTitleLength {
		return validationErrorf("sender title must be at most %d characters (got %d)", maxSenderTitleLength, n)
	}

	if err := s.repo.Tenant().UpdateSMSSettings(ctx, tenantID, smsTitle, smsAPIKey); err != nil {
		return err
	}

	s.logger.Info("Tenant SMS settings updated",
		zap.Int64("tenantID", tenantID),
		zap.Bool("customTitle", smsTitle != ""),
		zap.Bool("customAPIKey", smsAPIKey != ""))

	return nil
}
