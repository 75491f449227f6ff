package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Nardoto/nardotos-finance/internal/errors"
	"github.com/Nardoto/nardotos-finance/internal/models"
	"github.com/Nardoto/nardotos-finance/internal/services"
)

// PlanHandler handles scheduled-bill requests.
type PlanHandler struct {
	planService  services.PlanServicer
	auditService services.AuditServicer
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService services.PlanServicer, auditService services.AuditServicer) *PlanHandler {
	return &PlanHandler{planService: planService, auditService: auditService}
}

// CreatePlanRequest represents the plan creation payload.
type CreatePlanRequest struct {
	Type        models.EntryType `json:"tipo" binding:"omitempty,entry_type"`
	Description string           `json:"descricao"`
	Amount      float64          `json:"valor" binding:"required,gt=0"`
	DueDate     time.Time        `json:"dataVencimento" binding:"required"`
	Category    string           `json:"categoria" binding:"required"`
	Recurring   bool             `json:"recorrente"`
	Owner       string           `json:"usuario" binding:"required"`
}

// UpdatePlanRequest represents the plan update payload. Setting paga=true
// settles the plan.
type UpdatePlanRequest struct {
	Type        *models.EntryType `json:"tipo" binding:"omitempty,entry_type"`
	Description *string           `json:"descricao"`
	Amount      *float64          `json:"valor" binding:"omitempty,gt=0"`
	DueDate     *time.Time        `json:"dataVencimento"`
	Category    *string           `json:"categoria" binding:"omitempty,min=1"`
	Recurring   *bool             `json:"recorrente"`
	Paid        *bool             `json:"paga"`
}

// CreatePlan handles the creation of a scheduled bill.
// @Summary     Create a plan
// @Description Create a new scheduled bill
// @Tags        plans
// @Accept      json
// @Produce     json
// @Param       request body CreatePlanRequest true "Plan details"
// @Success     201 {object} map[string]interface{} "Plan created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /planejamento [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	plan, err := h.planService.CreatePlan(services.PlanInput{
		Type:        req.Type,
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     req.DueDate,
		Category:    req.Category,
		Recurring:   req.Recurring,
		Owner:       req.Owner,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(req.Owner, "CREATE_PLAN", "plan", plan.ID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount, "recurring": req.Recurring})

	c.JSON(http.StatusCreated, gin.H{"conta": plan})
}

// GetPlans handles listing all plans.
// @Summary     List plans
// @Description List scheduled bills, unpaid first, ordered by due date
// @Tags        plans
// @Produce     json
// @Success     200 {object} map[string]interface{} "Plans"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /planejamento [get]
func (h *PlanHandler) GetPlans(c *gin.Context) {
	plans, err := h.planService.ListPlans()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contas": plans})
}

// UpdatePlan handles plan updates, including settlement via paga=true.
// @Summary     Update a plan
// @Description Update plan fields; setting paga=true settles the plan and records its entry
// @Tags        plans
// @Accept      json
// @Produce     json
// @Param       id      path string            true "Plan ID"
// @Param       request body UpdatePlanRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Updated plan, plus settlement records when settled"
// @Failure     400 {object} ErrorResponse "Invalid input or plan already settled"
// @Failure     404 {object} ErrorResponse "Plan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /planejamento/{id} [put]
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	plan, settlement, err := h.planService.UpdatePlan(c.Param("id"), services.PlanUpdate{
		Type:        req.Type,
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     req.DueDate,
		Category:    req.Category,
		Recurring:   req.Recurring,
		Paid:        req.Paid,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	if settlement != nil {
		h.auditService.Log(plan.Owner, "SETTLE_PLAN", "plan", plan.ID, c.ClientIP(), nil)
		c.JSON(http.StatusOK, settlement)
		return
	}

	h.auditService.Log(plan.Owner, "UPDATE_PLAN", "plan", plan.ID, c.ClientIP(), nil)
	c.JSON(http.StatusOK, gin.H{"conta": plan})
}

// DeletePlan handles deletion of a plan.
// @Summary     Delete a plan
// @Tags        plans
// @Produce     json
// @Param       id path string true "Plan ID"
// @Success     200 {object} map[string]interface{} "Deletion confirmed"
// @Failure     404 {object} ErrorResponse "Plan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /planejamento/{id} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	id := c.Param("id")
	if err := h.planService.DeletePlan(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("", "DELETE_PLAN", "plan", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
