package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/anadolusms/smspanel/internal/gateway"
	"github.com/anadolusms/smspanel/internal/handler"
	"github.com/anadolusms/smspanel/internal/middleware"
	"github.com/anadolusms/smspanel/internal/models"
	"github.com/anadolusms/smspanel/internal/repository"
	"github.com/anadolusms/smspanel/internal/service"
	"github.com/anadolusms/smspanel/internal/service/mocks"
)

type handlerMocks struct {
	dispatch   *mocks.MockDispatchService
	reconciler *mocks.MockReconcilerService
	scheduler  *mocks.MockSchedulerService
	admin      *mocks.MockAdminService
	health     *mocks.MockHealthService
}

func newTestHandler(t *testing.T) (*handler.Handler, *handlerMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &handlerMocks{
		dispatch:   mocks.NewMockDispatchService(ctrl),
		reconciler: mocks.NewMockReconcilerService(ctrl),
		scheduler:  mocks.NewMockSchedulerService(ctrl),
		admin:      mocks.NewMockAdminService(ctrl),
		health:     mocks.NewMockHealthService(ctrl),
	}

	svc := &service.Service{
		Dispatch:   m.dispatch,
		Reconciler: m.reconciler,
		Scheduler:  m.scheduler,
		Admin:      m.admin,
		Health:     m.health,
	}

	return handler.NewHandler(svc, zap.NewNop()), m
}

func testRouter(h *handler.Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/sms/send", h.SendSMS)
	r.Post("/sms/calculate-cost", h.CalculateCost)
	r.Get("/sms/report/{campaignId}", h.GetDeliveryReport)
	r.Get("/balance", h.GetBalance)
	r.Get("/campaigns", h.ListCampaigns)
	r.Get("/campaigns/{campaignId}", h.GetCampaign)
	r.Post("/admin/tenants/{tenantId}/balance", h.AddBalance)
	r.Put("/admin/tenants/{tenantId}/sms-settings", h.UpdateSMSSettings)
	r.Get("/health", h.HealthCheck)
	return r
}

func authedRequest(method, target string, body []byte, tenant *models.Tenant) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(middleware.WithTenant(req.Context(), tenant))
}

func plainTenant(id int64) *models.Tenant {
	return &models.Tenant{
		ID:     id,
		Role:   models.TenantRoleTenant,
		Status: models.TenantStatusActive,
	}
}

func operatorTenant(id int64) *models.Tenant {
	return &models.Tenant{
		ID:     id,
		Role:   models.TenantRoleOperator,
		Status: models.TenantStatusActive,
	}
}

func TestHandler_SendSMS(t *testing.T) {
	t.Run("success with recipient array", func(t *testing.T) {
		h, m := newTestHandler(t)

		m.dispatch.EXPECT().
			Send(gomock.Any(), int64(7), service.SendInput{
				Text:       "hello",
				Recipients: []string{"905321234567", "12345"},
			}).
			Return(&service.SendResult{
				CampaignID:     "c-1",
				Status:         "sending",
				TotalInput:     2,
				ValidSent:      1,
				InvalidNumbers: []string{"12345"},
				CreditsUsed:    2,
				Balance:        8,
				ReportID:       "rapor-1",
			}, nil)

		body, _ := json.Marshal(map[string]interface{}{
			"message":    "hello",
			"recipients": []string{"905321234567", "12345"},
		})

		w := httptest.NewRecorder()
		testRouter(h).ServeHTTP(w, authedRequest("POST", "/sms/send", body, plainTenant(7)))

		require.Equal(t, http.StatusOK, w.Code)

		var result service.SendResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, "c-1", result.CampaignID)
		assert.Equal(t, int64(2), result.CreditsUsed)
	})

	t.Run("single recipient string is accepted", func(t *testing.T) {
		h, m := newTestHandler(t)

		m.dispatch.EXPECT().
			Send(gomock.Any(), int64(7), service.SendInput{
				Text:       "hello",
				Recipients: []string{"905321234567"},
			}).
			Return(&service.SendResult{CampaignID: "c-2", Status: "sending"}, nil)

		body := []byte(`{"message":"hello","recipients":"905321234567"}`)

		w := httptest.NewRecorder()
		testRouter(h).ServeHTTP(w, authedRequest("POST", "/sms/send", body, plainTenant(7)))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		h, m := newTestHandler(t)

		m.dispatch.EXPECT().
			Send(gomock.Any(), int64(7), gomock.Any()).
			Return(nil, &service.ValidationError{Reason: "message text is required"})

		body := []byte(`{"recipients":["905321234567"]}`)

		w := httptest.NewRecorder()
		testRouter(h).ServeHTTP(w, authedRequest("POST", "/sms/send", body, plainTenant(7)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("insufficient funds", func(t *testing.T) {
		h, m := newTestHandler(t)

		m.dispatch.EXPECT().
			Send(gomock.Any(), int64(7), gomock.Any()).
			Return(nil, repository.ErrInsufficientFunds)

		body := []byte(`{"message":"hello","recipients":["905321234567"]}`)

		w := httptest.NewRecorder()
		testRouter(h).ServeHTTP(w, authedRequest("POST", "/sms/send", body, plainTenant(7)))

		assert.Equal(t, http.StatusPaymentRequired, w.Code)
		assert.Contains(t, w.Body.String(), "INSUFFICIENT_FUNDS")
	})

	t.Run("gateway failure returns charge detail", func(t *testing.T) {
		h, m := newTestHandler(t)

		partial := &service.SendResult{
			CampaignID:  "c-3",
			Status:      "failed",
			CreditsUsed: 2,
			Details:     "gateway returned status 500",
		}
		m.dispatch.EXPECT().
			Send(gomock.Any(), int64(7), gomock.Any()).
			Return(partial, &gateway.Error{Kind: gateway.KindServer, Message: "gateway returned status 500"})

		body := []byte(`{"message":"hello","recipients":["905321234567","905339876543"]}`)

		w := httptest.NewRecorder()
		testRouter(h).ServeHTTP(w, authedRequest("POST", "/sms/send", body, plainTenant(7)))

		require.Equal(t, http.StatusBadGateway, w.Code)

		var result service.SendResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, "c-3", result.CampaignID)
		assert.Equal(t, int64(2), result.CreditsUsed)
		assert.Equal(t, "failed", result.Status)
	})

	t.Run("malformed body", func(t *testing.T) {
		h, _ := newTestHandler(t)

		w := httptest.NewRecorder()
		testRouter(h).ServeHTTP(w, authedRequest("POST", "/sms/send", []byte(`{`), plainTenant(7)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_CalculateCost(t *testing.T) {
	h, m := newTestHandler(t)

	m.dispatch.EXPECT().
		EstimateCost("hello", []string{"905321234567", "12345"}).
		Return(&service.CostEstimate{
			MessageLength:   5,
			TotalRecipients: 2,
			ValidRecipients: 1,
			InvalidCount:    1,
			Credits:         2,
			Strategy:        "flat",
		})

	body := []byte(`{"message":"hello","recipients":["905321234567","12345"]}`)

	w := httptest.NewRecorder()
	testRouter(h).ServeHTTP(w, authedRequest("POST", "/sms/calculate-cost", body, plainTenant(7)))

	require.Equal(t, http.StatusOK, w.Code)

	var estimate service.CostEstimate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &estimate))
	assert.Equal(t, int64(2), estimate.Credits)
}

func TestHandler_GetBalance(t *testing.T) {
	h, m := newTestHandler(t)

	m.dispatch.EXPECT().
		GetBalance(gomock.Any(), int64(7)).
		Return(&service.BalanceInfo{Balance: 42}, nil)

	w := httptest.NewRecorder()
	testRouter(h).ServeHTTP(w, authedRequest("GET", "/balance", nil, plainTenant(7)))

	require.Equal(t, http.StatusOK, w.Code)

	var info service.BalanceInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, int64(42), info.Balance)
}

func TestHandler_GetDeliveryReport(t *testing.T) {
	t.Run("owner sees fresh rollups", func(t *testing.T) {
		h, m := newTestHandler(t)

		m.dispatch.EXPECT().
			GetCampaign(gomock.Any(), int64(7), "c-1").
			Return(&service.CampaignDetail{Campaign: &models.Campaign{ID: "c-1", TenantID: 7}}, nil)
		m.reconciler.EXPECT().
			ReconcileCampaign(gomock.Any(), "c-1").
			Return(&models.Campaign{
				ID:             "c-1",
				TenantID:       7,
				Status:         models.CampaignStatusCompleted,
				DeliveredCount: 3,
			}, nil)

		w := httptest.NewRecorder()
		testRouter(h).ServeHTTP(w, authedRequest("GET", "/sms/report/c-1", nil, plainTenant(7)))

		require.Equal(t, http.StatusOK, w.Code)

		var campaign models.Campaign
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &campaign))
		assert.Equal(t, 3, campaign.DeliveredCount)
	})

	t.Run("foreign campaign reads as missing without a reconcile pass", func(t *testing.T) {
		h, m := newTestHandler(t)

		// Ownership fails first; the reconciler mock has no expectations, so
		// any reconciliation attempt for the foreign id fails the test.
		m.dispatch.EXPECT().
			GetCampaign(gomock.Any(), int64(7), "c-1").
			Return(nil, repository.ErrCampaignNotFound)

		w := httptest.NewRecorder()
		testRouter(h).ServeHTTP(w, authedRequest("GET", "/sms/report/c-1", nil, plainTenant(7)))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("operator reads any campaign", func(t *testing.T) {
		h, m := newTestHandler(t)

		m.reconciler.EXPECT().
			ReconcileCampaign(gomock.Any(), "c-1").
			Return(&models.Campaign{ID: "c-1", TenantID: 99, Status: models.CampaignStatusSending}, nil)

		w := httptest.NewRecorder()
		testRouter(h).ServeHTTP(w, authedRequest("GET", "/sms/report/c-1", nil, operatorTenant(1)))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown campaign", func(t *testing.T) {
		h, m := newTestHandler(t)

		m.dispatch.EXPECT().
			GetCampaign(gomock.Any(), int64(7), "missing").
			Return(nil, repository.ErrCampaignNotFound)

		w := httptest.NewRecorder()
		testRouter(h).ServeHTTP(w, authedRequest("GET", "/sms/report/missing", nil, plainTenant(7)))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_ListCampaigns(t *testing.T) {
	t.Run("passes pagination and status filter", func(t *testing.T) {
		h, m := newTestHandler(t)

		m.dispatch.EXPECT().
			ListCampaigns(gomock.Any(), int64(7), models.CampaignStatusCompleted, 2, 10).
			Return(&service.CampaignList{
				Pagination: service.Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 25, ItemsPerPage: 10},
			}, nil)

		w := httptest.NewRecorder()
		testRouter(h).ServeHTTP(w, authedRequest("GET", "/campaigns?page=2&limit=10&status=completed", nil, plainTenant(7)))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		h, _ := newTestHandler(t)

		w := httptest.NewRecorder()
		testRouter(h).ServeHTTP(w, authedRequest("GET", "/campaigns?status=bogus", nil, plainTenant(7)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetCampaign(t *testing.T) {
	h, m := newTestHandler(t)

	m.dispatch.EXPECT().
		GetCampaign(gomock.Any(), int64(7), "c-1").
		Return(nil, repository.ErrCampaignNotFound)

	w := httptest.NewRecorder()
	testRouter(h).ServeHTTP(w, authedRequest("GET", "/campaigns/c-1", nil, plainTenant(7)))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_AddBalance(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h, m := newTestHandler(t)

		m.admin.EXPECT().
			AddBalance(gomock.Any(), int64(5), int64(1000), "wire transfer").
			Return(int64(1500), nil)

		body := []byte(`{"amount":1000,"description":"wire transfer"}`)

		w := httptest.NewRecorder()
		testRouter(h).ServeHTTP(w, authedRequest("POST", "/admin/tenants/5/balance", body, plainTenant(1)))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "1500")
	})

	t.Run("unknown tenant", func(t *testing.T) {
		h, m := newTestHandler(t)

		m.admin.EXPECT().
			AddBalance(gomock.Any(), int64(5), int64(1000), gomock.Any()).
			Return(int64(0), repository.ErrTenantNotFound)

		body := []byte(`{"amount":1000}`)

		w := httptest.NewRecorder()
		testRouter(h).ServeHTTP(w, authedRequest("POST", "/admin/tenants/5/balance", body, plainTenant(1)))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid tenant id", func(t *testing.T) {
		h, _ := newTestHandler(t)

		w := httptest.NewRecorder()
		testRouter(h).ServeHTTP(w, authedRequest("POST", "/admin/tenants/abc/balance", []byte(`{"amount":1}`), plainTenant(1)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_UpdateSMSSettings(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h, m := newTestHandler(t)

		m.admin.EXPECT().
			UpdateSMSSettings(gomock.Any(), int64(5), "ACME", "tenant-key").
			Return(nil)

		body := []byte(`{"sms_title":"ACME","sms_api_key":"tenant-key"}`)

		w := httptest.NewRecorder()
		testRouter(h).ServeHTTP(w, authedRequest("PUT", "/admin/tenants/5/sms-settings", body, operatorTenant(1)))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("oversized sender title", func(t *testing.T) {
		h, m := newTestHandler(t)

		m.admin.EXPECT().
			UpdateSMSSettings(gomock.Any(), int64(5), "TWELVECHARSX", "").
			Return(&service.ValidationError{Reason: "sender title must be at most 11 characters (got 12)"})

		body := []byte(`{"sms_title":"TWELVECHARSX"}`)

		w := httptest.NewRecorder()
		testRouter(h).ServeHTTP(w, authedRequest("PUT", "/admin/tenants/5/sms-settings", body, operatorTenant(1)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("unknown tenant", func(t *testing.T) {
		h, m := newTestHandler(t)

		m.admin.EXPECT().
			UpdateSMSSettings(gomock.Any(), int64(99), "ACME", "").
			Return(repository.ErrTenantNotFound)

		body := []byte(`{"sms_title":"ACME"}`)

		w := httptest.NewRecorder()
		testRouter(h).ServeHTTP(w, authedRequest("PUT", "/admin/tenants/99/sms-settings", body, operatorTenant(1)))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_HealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h, m := newTestHandler(t)

		m.health.EXPECT().GetHealth().Return(&service.HealthStatus{
			Status: service.StatusHealthy,
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/health", nil)
		testRouter(h).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unhealthy", func(t *testing.T) {
		h, m := newTestHandler(t)

		m.health.EXPECT().GetHealth().Return(&service.HealthStatus{
			Status: service.StatusUnhealthy,
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/health", nil)
		testRouter(h).ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
