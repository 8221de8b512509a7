package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/anadolusms/smspanel/internal/repository"
	repomocks "github.com/anadolusms/smspanel/internal/repository/mocks"
	"github.com/anadolusms/smspanel/internal/service"
)

func newAdminService(ctrl *gomock.Controller) (service.AdminService, *repomocks.MockTenantRepository) {
	mockRepo := repomocks.NewMockRepository(ctrl)
	mockTenants := repomocks.NewMockTenantRepository(ctrl)
	mockRepo.EXPECT().Tenant().Return(mockTenants).AnyTimes()

	return service.NewAdminService(mockRepo, zap.NewNop()), mockTenants
}

func TestAdminService_AddBalance(t *testing.T) {
	t.Run("credits the tenant without a campaign reference", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockTenants := newAdminService(ctrl)

		mockTenants.EXPECT().
			Credit(gomock.Any(), int64(5), int64(1000), "wire transfer", gomock.Nil()).
			Return(int64(1500), nil)

		newBalance, err := svc.AddBalance(context.Background(), 5, 1000, "wire transfer")
		require.NoError(t, err)
		assert.Equal(t, int64(1500), newBalance)
	})

	t.Run("defaults the description", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockTenants := newAdminService(ctrl)

		mockTenants.EXPECT().
			Credit(gomock.Any(), int64(5), int64(200), "balance top-up", gomock.Nil()).
			Return(int64(200), nil)

		_, err := svc.AddBalance(context.Background(), 5, 200, "")
		require.NoError(t, err)
	})

	t.Run("rejects non-positive amounts before touching the ledger", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _ := newAdminService(ctrl)

		for _, amount := range []int64{0, -100} {
			_, err := svc.AddBalance(context.Background(), 5, amount, "top-up")

			var validationErr *service.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		}
	})
}

func TestAdminService_UpdateSMSSettings(t *testing.T) {
	t.Run("stores the override", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockTenants := newAdminService(ctrl)

		mockTenants.EXPECT().
			UpdateSMSSettings(gomock.Any(), int64(5), "ACME", "tenant-key").
			Return(nil)

		require.NoError(t, svc.UpdateSMSSettings(context.Background(), 5, "ACME", "tenant-key"))
	})

	t.Run("rejects a sender title over the gateway limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _ := newAdminService(ctrl)

		// 12 characters: one past what the gateway accepts as a sender label.
		err := svc.UpdateSMSSettings(context.Background(), 5, strings.Repeat("A", 12), "")

		var validationErr *service.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Reason, "sender title")
	})

	t.Run("eleven characters is accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockTenants := newAdminService(ctrl)

		title := strings.Repeat("A", 11)
		mockTenants.EXPECT().
			UpdateSMSSettings(gomock.Any(), int64(5), title, "").
			Return(nil)

		require.NoError(t, svc.UpdateSMSSettings(context.Background(), 5, title, ""))
	})

	t.Run("propagates unknown tenant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockTenants := newAdminService(ctrl)

		mockTenants.EXPECT().
			UpdateSMSSettings(gomock.Any(), int64(99), "ACME", "").
			Return(repository.ErrTenantNotFound)

		err := svc.UpdateSMSSettings(context.Background(), 99, "ACME", "")
		assert.ErrorIs(t, err, repository.ErrTenantNotFound)
	})
}
