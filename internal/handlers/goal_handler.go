package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Nardoto/nardotos-finance/internal/errors"
	"github.com/Nardoto/nardotos-finance/internal/models"
	"github.com/Nardoto/nardotos-finance/internal/services"
)

// GoalHandler handles goal requests.
type GoalHandler struct {
	goalService  services.GoalServicer
	auditService services.AuditServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer, auditService services.AuditServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService, auditService: auditService}
}

// CreateGoalRequest represents the goal creation payload.
type CreateGoalRequest struct {
	Type     models.GoalType `json:"tipo" binding:"required,goal_type"`
	Category string          `json:"categoria" binding:"required"`
	Limit    float64         `json:"limite" binding:"required,gt=0"`
	Month    string          `json:"mes" binding:"required,month_key"`
}

// CreateGoal handles the creation of a monthly goal.
// @Summary     Create a goal
// @Description Create a per-category monthly target
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} map[string]interface{} "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /metas [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.CreateGoal(req.Type, req.Category, req.Limit, req.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("", "CREATE_GOAL", "goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"category": goal.Category, "month": goal.Month})

	c.JSON(http.StatusCreated, gin.H{"meta": goal})
}

// GetGoals handles listing all goals.
// @Summary     List goals
// @Tags        goals
// @Produce     json
// @Success     200 {object} map[string]interface{} "Goals"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /metas [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
	goals, err := h.goalService.ListGoals()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"metas": goals})
}

// DeleteGoal handles deletion of a goal.
// @Summary     Delete a goal
// @Tags        goals
// @Produce     json
// @Param       id path string true "Goal ID"
// @Success     200 {object} map[string]interface{} "Deletion confirmed"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /metas/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	id := c.Param("id")
	if err := h.goalService.DeleteGoal(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("", "DELETE_GOAL", "goal", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
