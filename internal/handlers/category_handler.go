package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Nardoto/nardotos-finance/internal/errors"
	"github.com/Nardoto/nardotos-finance/internal/services"
)

// CategoryHandler handles category vocabulary requests.
type CategoryHandler struct {
	categoryService services.CategoryServicer
	auditService    services.AuditServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer, auditService services.AuditServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, auditService: auditService}
}

// RenameCategoryRequest represents the rename payload.
type RenameCategoryRequest struct {
	NewName string `json:"novoNome" binding:"required"`
}

// MergeCategoryRequest represents the merge payload.
type MergeCategoryRequest struct {
	Destination string `json:"categoriaDestino" binding:"required"`
}

// GetCategories lists every known category name.
// @Summary     List categories
// @Description Union of default vocabulary and categories seen on entries and plans
// @Tags        categories
// @Produce     json
// @Success     200 {object} map[string]interface{} "Category names"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categorias [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	names, err := h.categoryService.ListNames()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categorias": names})
}

// RenameCategory renames a category across entries and plans.
// @Summary     Rename a category
// @Description Rewrite every entry and plan from one category name to another
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       nome    path string                true "Current category name"
// @Param       request body RenameCategoryRequest true "New name"
// @Success     200 {object} map[string]interface{} "Records retagged"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categorias/{nome} [put]
func (h *CategoryHandler) RenameCategory(c *gin.Context) {
	var req RenameCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	oldName := c.Param("nome")
	changed, err := h.categoryService.Rename(oldName, req.NewName)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("", "RENAME_CATEGORY", "category", oldName, c.ClientIP(),
		map[string]interface{}{"to": req.NewName, "changed": changed})

	c.JSON(http.StatusOK, gin.H{"success": true, "atualizados": changed})
}

// MergeCategory folds one category into another.
// @Summary     Merge a category
// @Description Move every entry and plan from the source category into the destination and drop the source
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       nome    path string               true "Source category name"
// @Param       request body MergeCategoryRequest true "Destination"
// @Success     200 {object} map[string]interface{} "Records moved"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categorias/{nome} [delete]
func (h *CategoryHandler) MergeCategory(c *gin.Context) {
	var req MergeCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	source := c.Param("nome")
	moved, err := h.categoryService.Merge(source, req.Destination)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("", "MERGE_CATEGORY", "category", source, c.ClientIP(),
		map[string]interface{}{"into": req.Destination, "moved": moved})

	c.JSON(http.StatusOK, gin.H{"success": true, "movidos": moved})
}
