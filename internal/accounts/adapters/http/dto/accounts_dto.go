// Package dto содержит объекты передачи данных HTTP API учетных записей.
package dto

import "goaccounts/internal/accounts/domain/entities"

// RegisterRequest содержит данные для регистрации.
type RegisterRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Avatar   entities.Avatar `json:"avatar"`
}

// LoginRequest содержит данные для входа.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ErrorResponse - тело ответа об ошибке.
type ErrorResponse struct {
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	Source string `json:"source,omitempty"`
}

// HealthResponse - тело ответа проверки здоровья.
type HealthResponse struct {
	Status string `json:"status"`
}
