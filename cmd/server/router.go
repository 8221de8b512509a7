package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/anadolusms/smspanel/internal/handler"
	"github.com/anadolusms/smspanel/internal/middleware"
	"github.com/anadolusms/smspanel/internal/repository"
)

func setupRouter(h *handler.Handler, repo repository.Repository, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(repo.Tenant(), logger))

		r.Post("/sms/send", h.SendSMS)
		r.Post("/sms/calculate-cost", h.CalculateCost)
		r.Get("/sms/report/{campaignId}", h.GetDeliveryReport)

		r.Get("/balance", h.GetBalance)

		r.Get("/campaigns", h.ListCampaigns)
		r.Get("/campaigns/{campaignId}", h.GetCampaign)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireOperator())

			r.Post("/admin/tenants/{tenantId}/balance", h.AddBalance)
			r.Put("/admin/tenants/{tenantId}/sms-settings", h.UpdateSMSSettings)

			r.Post("/scheduler/start", h.StartScheduler)
			r.Post("/scheduler/stop", h.StopScheduler)
		})
	})

	return r
}
