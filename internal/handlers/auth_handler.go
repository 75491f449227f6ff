package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Nardoto/nardotos-finance/internal/config"
	apperrors "github.com/Nardoto/nardotos-finance/internal/errors"
	"github.com/Nardoto/nardotos-finance/internal/services"
)

// AuthHandler handles login requests against the fixed household users.
type AuthHandler struct {
	cfg          *config.Config
	auditService services.AuditServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config, auditService services.AuditServicer) *AuthHandler {
	return &AuthHandler{cfg: cfg, auditService: auditService}
}

// LoginRequest represents the login payload.
type LoginRequest struct {
	Username string `json:"usuario" binding:"required"`
	Password string `json:"senha" binding:"required"`
}

// Login validates a username/password pair.
// @Summary     Login
// @Description Validate credentials for one of the configured users
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Credentials"
// @Success     200 {object} map[string]interface{} "Login accepted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Router      /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expected, ok := h.cfg.PasswordFor(req.Username)
	if !ok {
		respondWithError(c, apperrors.ErrUserNotFound)
		return
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(req.Password)) != 1 {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}

	username := strings.ToUpper(req.Username)
	h.auditService.Log(username, "LOGIN", "session", "", c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"success": true, "usuario": username})
}
