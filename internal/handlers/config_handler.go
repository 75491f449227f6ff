package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nardoto/nardotos-finance/internal/config"
)

// ConfigHandler exposes the feature flags the frontend needs.
type ConfigHandler struct {
	cfg *config.Config
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

// GetConfig returns the client-visible runtime flags.
// @Summary     Get client config
// @Description Return the feature flags controlling AI usage
// @Tags        config
// @Produce     json
// @Success     200 {object} map[string]interface{} "Flags"
// @Router      /config [get]
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"modoEconomico":   h.cfg.EconomyMode,
		"permitirImagens": h.cfg.AllowImages,
	})
}
