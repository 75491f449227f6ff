// Package handlers contains the Gin HTTP handlers for the API.
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Nardoto/nardotos-finance/internal/errors"
	"github.com/Nardoto/nardotos-finance/internal/logger"
	"github.com/Nardoto/nardotos-finance/internal/models"
)

// ErrorResponse documents the error body shape for swagger.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// requireMonthQuery reads the mandatory "mes" query parameter.
func requireMonthQuery(c *gin.Context) (string, error) {
	month := c.Query("mes")
	if month == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Mês não informado")
	}
	return month, nil
}

// parseAccountQuery reads the optional "conta" query parameter.
func parseAccountQuery(c *gin.Context) (*models.EntryAccount, error) {
	raw := c.Query("conta")
	if raw == "" {
		return nil, nil
	}
	account := models.EntryAccount(raw)
	switch account {
	case models.AccountCompany, models.AccountPartnerA, models.AccountPartnerB:
		return &account, nil
	}
	return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "conta inválida, use COMPANY, PARTNER_A ou PARTNER_B")
}
