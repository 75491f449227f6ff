package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nardoto/nardotos-finance/internal/services"
)

// SummaryHandler handles aggregation queries.
type SummaryHandler struct {
	summaryService services.SummaryServicer
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService services.SummaryServicer) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// GetSummary returns the monthly financial overview.
// @Summary     Monthly summary
// @Description Totals, balance, pending bucket and category breakdowns for a month
// @Tags        summary
// @Produce     json
// @Param       mes   query string false "Month (YYYY-MM), defaults to the current month"
// @Param       conta query string false "Account (COMPANY, PARTNER_A, PARTNER_B)"
// @Success     200 {object} services.Summary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /resumo [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	month := c.Query("mes")
	if month == "" {
		month = services.MonthKey(time.Now().UTC())
	}
	account, err := parseAccountQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.summaryService.Summarize(month, account)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetCategoryBreakdown returns each category's share of the month's activity.
// @Summary     Category breakdown
// @Description Per-category totals, counts and shares plus the five largest expenses
// @Tags        summary
// @Produce     json
// @Param       mes query string true "Month (YYYY-MM)"
// @Success     200 {object} services.CategoryReport "Breakdown"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categorias-resumo [get]
func (h *SummaryHandler) GetCategoryBreakdown(c *gin.Context) {
	month, err := requireMonthQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.summaryService.CategoryBreakdown(month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetDashboard returns the month-by-month history.
// @Summary     Dashboard
// @Description Settled totals per month, ascending, months without entries omitted
// @Tags        summary
// @Produce     json
// @Success     200 {object} services.DashboardReport "History"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *SummaryHandler) GetDashboard(c *gin.Context) {
	report, err := h.summaryService.Dashboard()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
