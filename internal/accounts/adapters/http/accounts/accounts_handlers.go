// Package accounts содержит HTTP обработчики регистрации, входа и получения профиля.
package accounts

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"goaccounts/internal/accounts/adapters/http/dto"
	"goaccounts/internal/accounts/domain/services"
	"goaccounts/internal/accounts/ports/api"
	"goaccounts/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister   = "accounts handler: register"
	LogHandlerLogin      = "accounts handler: login"
	LogHandlerGetAccount = "accounts handler: get account"

	ErrorInvalidRequest  = "invalid request"
	ErrorInternal        = "internal server error"
	ErrorWorkflowFailure = "workflow failed"
	ErrorUnexpected      = "unexpected error serving request"
)

// Handler содержит HTTP обработчики учетных записей.
type Handler struct {
	registration   api.RegistrationUseCase
	authentication api.AuthenticationUseCase
	accounts       api.AccountUseCase
}

// NewHandler создает обработчик.
func NewHandler(
	registration api.RegistrationUseCase,
	authentication api.AuthenticationUseCase,
	accounts api.AccountUseCase,
) *Handler {
	return &Handler{
		registration:   registration,
		authentication: authentication,
		accounts:       accounts,
	}
}

// Register обрабатывает POST /api/v1/accounts.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusBadRequest, dto.ErrorResponse{Error: ErrorInvalidRequest})
	}

	session, err := h.registration.Register(requestCtx, req.Name, req.Email, req.Password, req.Avatar)
	if err != nil {
		return sendError(ctx, err)
	}

	return sendJSON(ctx, http.StatusCreated, session)
}

// Login обрабатывает POST /api/v1/sessions.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendJSON(ctx, http.StatusBadRequest, dto.ErrorResponse{Error: ErrorInvalidRequest})
	}

	session, err := h.authentication.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		return sendError(ctx, err)
	}

	return sendJSON(ctx, http.StatusOK, session)
}

// GetAccount обрабатывает GET /api/v1/accounts/:id.
func (h *Handler) GetAccount(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerGetAccount)

	profile, err := h.accounts.GetAccount(requestCtx, ctx.Params("id"))
	if err != nil {
		return sendError(ctx, err)
	}

	return sendJSON(ctx, http.StatusOK, profile)
}

// StatusCode возвращает HTTP статус для классификации отказа.
func StatusCode(status services.Status) int {
	switch status {
	case services.StatusBadRequest:
		return http.StatusBadRequest
	case services.StatusUnauthorized:
		return http.StatusUnauthorized
	case services.StatusNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func sendError(ctx fiber.Ctx, err error) error {
	requestCtx := ctx.Context()

	var failure *services.Failure
	if errors.As(err, &failure) {
		logger.Log(requestCtx).Debug(requestCtx, ErrorWorkflowFailure,
			zap.String("kind", string(failure.Kind)), zap.String("source", failure.Source))
		return sendJSON(ctx, StatusCode(failure.Status), dto.ErrorResponse{
			Error:  failure.Message,
			Kind:   string(failure.Kind),
			Source: failure.Source,
		})
	}

	logger.Log(requestCtx).Error(requestCtx, ErrorUnexpected, zap.Error(err))
	return sendJSON(ctx, http.StatusInternalServerError, dto.ErrorResponse{Error: ErrorInternal})
}

func sendJSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
