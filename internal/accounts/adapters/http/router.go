// Package http содержит HTTP сервер сервиса учетных записей.
package http

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"goaccounts/internal/accounts/adapters/http/accounts"
	"goaccounts/internal/accounts/adapters/http/dto"
	"goaccounts/internal/accounts/adapters/http/middleware"
	"goaccounts/internal/accounts/ports/api"
	"goaccounts/pkg/logger"
)

// Статусы проверки здоровья.
const (
	HealthOK          = "ok"
	HealthUnavailable = "unavailable"
)

// HealthCheck проверяет доступность зависимостей.
type HealthCheck func(ctx context.Context) error

// Dependencies - сценарии и вспомогательные компоненты для маршрутов.
type Dependencies struct {
	Registration   api.RegistrationUseCase
	Authentication api.AuthenticationUseCase
	Accounts       api.AccountUseCase
	Gatherer       prometheus.Gatherer
	Health         HealthCheck
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	handler := accounts.NewHandler(deps.Registration, deps.Authentication, deps.Accounts)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/healthz", healthHandler(deps.Health))
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	apiV1 := app.Group("/api/v1")
	apiV1.Post("/accounts", handler.Register)
	apiV1.Get("/accounts/:id", handler.GetAccount)
	apiV1.Post("/sessions", handler.Login)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Route not found"})
	})
}

func healthHandler(check HealthCheck) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		if check != nil {
			requestCtx := ctx.Context()
			if err := check(requestCtx); err != nil {
				logger.Log(requestCtx).Warn(requestCtx, "health check failed", zap.Error(err))
				return ctx.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{Status: HealthUnavailable})
			}
		}
		return ctx.JSON(dto.HealthResponse{Status: HealthOK})
	}
}
