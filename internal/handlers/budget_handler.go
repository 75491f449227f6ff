package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Nardoto/nardotos-finance/internal/errors"
	"github.com/Nardoto/nardotos-finance/internal/models"
	"github.com/Nardoto/nardotos-finance/internal/services"
)

// BudgetHandler handles monthly budget requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// UpsertBudgetRequest represents the budget upsert payload.
type UpsertBudgetRequest struct {
	Owner        string              `json:"usuario" binding:"required"`
	Month        string              `json:"mes" binding:"required,month_key"`
	GlobalCap    *float64            `json:"orcamentoGlobal" binding:"omitempty,gte=0"`
	CategoryCaps models.CategoryCaps `json:"categorias"`
}

// GetBudget returns the budget for a user and month.
// @Summary     Get a budget
// @Description Get the budget for a user and month; null when none saved
// @Tags        budgets
// @Produce     json
// @Param       usuario query string true "Owner"
// @Param       mes     query string true "Month (YYYY-MM)"
// @Success     200 {object} models.Budget "Budget"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orcamento [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	owner := c.Query("usuario")
	if owner == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "usuário não informado"))
		return
	}
	month, err := requireMonthQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudget(owner, month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if budget.ID == "" {
		// Never saved for this owner and month.
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, budget)
}

// UpsertBudget creates or replaces the budget for a user and month.
// @Summary     Upsert a budget
// @Description Create or replace the budget keyed by owner and month
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       request body UpsertBudgetRequest true "Budget"
// @Success     200 {object} models.Budget "Budget updated"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orcamento [post]
func (h *BudgetHandler) UpsertBudget(c *gin.Context) {
	var req UpsertBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, created, err := h.budgetService.UpsertBudget(req.Owner, req.Month, req.GlobalCap, req.CategoryCaps)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(req.Owner, "UPSERT_BUDGET", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"month": req.Month})

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, budget)
}
