package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nardoto/nardotos-finance/internal/config"
	apperrors "github.com/Nardoto/nardotos-finance/internal/errors"
	"github.com/Nardoto/nardotos-finance/internal/services"
)

// ExtractHandler handles model-backed extraction requests. Extracted
// records are returned for review, not saved; the client posts the
// approved ones back through the regular create routes.
type ExtractHandler struct {
	extractionService services.ExtractionServicer
	cfg               *config.Config
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(extractionService services.ExtractionServicer, cfg *config.Config) *ExtractHandler {
	return &ExtractHandler{extractionService: extractionService, cfg: cfg}
}

// ExtractEntriesRequest represents the entry extraction payload.
type ExtractEntriesRequest struct {
	Text  string `json:"texto"`
	Image string `json:"imagemBase64"`
}

// ExtractPlansRequest represents the plan extraction payload.
type ExtractPlansRequest struct {
	Text string `json:"texto" binding:"required"`
}

// ExtractEntries extracts entries from text or a statement image.
// @Summary     Extract entries
// @Description Run the model over free-form text or a base64 statement image
// @Tags        extraction
// @Accept      json
// @Produce     json
// @Param       request body ExtractEntriesRequest true "Text or image"
// @Success     200 {object} map[string]interface{} "Extracted entries"
// @Failure     400 {object} ErrorResponse "Invalid input or images disabled"
// @Failure     500 {object} ErrorResponse "Model call failed"
// @Router      /processar [post]
func (h *ExtractHandler) ExtractEntries(c *gin.Context) {
	var req ExtractEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if req.Image != "" && !h.cfg.AllowImages {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Processamento de imagens está desativado"))
		return
	}

	entries, err := h.extractionService.ExtractEntries(c.Request.Context(), req.Text, req.Image)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lancamentos": entries})
}

// ExtractPlans extracts scheduled bills from free-form text.
// @Summary     Extract plans
// @Description Run the model over free-form text describing future bills
// @Tags        extraction
// @Accept      json
// @Produce     json
// @Param       request body ExtractPlansRequest true "Text"
// @Success     200 {object} map[string]interface{} "Extracted plans"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Model call failed"
// @Router      /processar-planejamento [post]
func (h *ExtractHandler) ExtractPlans(c *gin.Context) {
	var req ExtractPlansRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	plans, err := h.extractionService.ExtractPlans(c.Request.Context(), req.Text)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contas": plans})
}
