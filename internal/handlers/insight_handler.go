package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nardoto/nardotos-finance/internal/services"
)

// InsightHandler handles insight generation requests.
type InsightHandler struct {
	insightService services.InsightServicer
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(insightService services.InsightServicer) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// GetInsights returns period-over-period observations for a month.
// @Summary     Monthly insights
// @Description Threshold-based observations comparing the month against its predecessor
// @Tags        insights
// @Produce     json
// @Param       mes   query string true  "Month (YYYY-MM)"
// @Param       conta query string false "Account (COMPANY, PARTNER_A, PARTNER_B)"
// @Success     200 {object} services.InsightReport "Insights"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights [get]
func (h *InsightHandler) GetInsights(c *gin.Context) {
	month, err := requireMonthQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	account, err := parseAccountQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.insightService.Generate(month, account)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
