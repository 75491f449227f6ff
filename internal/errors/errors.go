// Package errors provides the application error type used across the API.
// Service-layer code returns AppErrors so handlers can produce consistent
// JSON error responses without leaking internal details to clients.
package errors

import "net/http"

// AppError is a structured application error carrying an error code,
// a human-readable message, an HTTP status code, and an optional
// internal error kept out of the response body.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Senha incorreta", StatusCode: http.StatusUnauthorized}
	ErrUserNotFound       = &AppError{Code: "USER_NOT_FOUND", Message: "Usuário não encontrado", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Entrada inválida", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Registro não encontrado", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "Ocorreu um erro interno", StatusCode: http.StatusInternalServerError}
)

// Entry errors.
var (
	ErrEntryNotFound = &AppError{Code: "ENTRY_NOT_FOUND", Message: "Lançamento não encontrado", StatusCode: http.StatusNotFound}
)

// Plan errors.
var (
	ErrPlanNotFound       = &AppError{Code: "PLAN_NOT_FOUND", Message: "Conta futura não encontrada", StatusCode: http.StatusNotFound}
	ErrPlanAlreadySettled = &AppError{Code: "PLAN_ALREADY_SETTLED", Message: "Conta já foi paga e não pode voltar a pendente", StatusCode: http.StatusBadRequest}
)

// Goal errors.
var (
	ErrGoalNotFound = &AppError{Code: "GOAL_NOT_FOUND", Message: "Meta não encontrada", StatusCode: http.StatusNotFound}
)

// Upstream errors (Gemini or any external call failure).
var (
	ErrUpstream = &AppError{Code: "UPSTREAM_ERROR", Message: "Erro ao processar lançamento", StatusCode: http.StatusInternalServerError}
)
