package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Nardoto/nardotos-finance/internal/errors"
	"github.com/Nardoto/nardotos-finance/internal/models"
	"github.com/Nardoto/nardotos-finance/internal/pagination"
	"github.com/Nardoto/nardotos-finance/internal/services"
	"github.com/Nardoto/nardotos-finance/internal/statement"
)

// EntryHandler handles entry-related requests.
type EntryHandler struct {
	entryService services.EntryServicer
	auditService services.AuditServicer
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryService services.EntryServicer, auditService services.AuditServicer) *EntryHandler {
	return &EntryHandler{entryService: entryService, auditService: auditService}
}

// EntryPayload is one entry in a create request.
type EntryPayload struct {
	Type        models.EntryType     `json:"tipo" binding:"required,entry_type"`
	Amount      float64              `json:"valor" binding:"required,gt=0"`
	Category    string               `json:"categoria" binding:"required"`
	Description string               `json:"descricao"`
	Date        time.Time            `json:"data"`
	Status      models.EntryStatus   `json:"status" binding:"omitempty,entry_status"`
	Account     *models.EntryAccount `json:"conta" binding:"omitempty,entry_account"`
}

// CreateEntriesRequest represents the batch create payload.
type CreateEntriesRequest struct {
	Entries []EntryPayload `json:"lancamentos" binding:"required,min=1,dive"`
	Owner   string         `json:"usuario" binding:"required"`
}

// UpdateEntryRequest represents the entry update payload.
type UpdateEntryRequest struct {
	Type        *models.EntryType    `json:"tipo" binding:"omitempty,entry_type"`
	Amount      *float64             `json:"valor" binding:"omitempty,gt=0"`
	Category    *string              `json:"categoria" binding:"omitempty,min=1"`
	Description *string              `json:"descricao"`
	Date        *time.Time           `json:"data"`
	Status      *models.EntryStatus  `json:"status" binding:"omitempty,entry_status"`
	Account     *models.EntryAccount `json:"conta" binding:"omitempty,entry_account"`
}

// CreateEntries handles batch creation of entries.
// @Summary     Create entries
// @Description Insert a batch of entries for a user
// @Tags        entries
// @Accept      json
// @Produce     json
// @Param       request body CreateEntriesRequest true "Entries"
// @Success     201 {object} map[string]interface{} "Saved entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /lancamentos [post]
func (h *EntryHandler) CreateEntries(c *gin.Context) {
	var req CreateEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	inputs := make([]services.EntryInput, 0, len(req.Entries))
	for _, p := range req.Entries {
		inputs = append(inputs, services.EntryInput{
			Type:        p.Type,
			Amount:      p.Amount,
			Category:    p.Category,
			Description: p.Description,
			Date:        p.Date,
			Status:      p.Status,
			Account:     p.Account,
		})
	}

	entries, err := h.entryService.CreateEntries(req.Owner, inputs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(req.Owner, "CREATE_ENTRIES", "entry", "", c.ClientIP(),
		map[string]interface{}{"count": len(entries)})

	c.JSON(http.StatusCreated, gin.H{"lancamentos": entries})
}

// GetEntries handles listing entries with optional month/account filters.
// @Summary     List entries
// @Description List entries filtered by month and account, paginated
// @Tags        entries
// @Produce     json
// @Param       mes   query string false "Month (YYYY-MM)"
// @Param       conta query string false "Account (COMPANY, PARTNER_A, PARTNER_B)"
// @Param       page  query int    false "Page number (default 1)"
// @Param       limit query int    false "Items per page (default 50, max 500)"
// @Success     200 {object} pagination.PageResponse[models.Entry] "Paginated entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /lancamentos [get]
func (h *EntryHandler) GetEntries(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := parseAccountQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.entryService.ListEntries(services.EntryFilter{
		MonthKey: c.Query("mes"),
		Account:  account,
	}, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateEntry handles partial updates of an entry.
// @Summary     Update an entry
// @Description Apply field updates to an existing entry
// @Tags        entries
// @Accept      json
// @Produce     json
// @Param       id      path string             true "Entry ID"
// @Param       request body UpdateEntryRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Updated entry"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /lancamentos/{id} [put]
func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.entryService.UpdateEntry(c.Param("id"), services.EntryUpdate{
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
		Status:      req.Status,
		Account:     req.Account,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(entry.Owner, "UPDATE_ENTRY", "entry", entry.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"lancamento": entry})
}

// DeleteEntry handles deletion of an entry.
// @Summary     Delete an entry
// @Tags        entries
// @Produce     json
// @Param       id path string true "Entry ID"
// @Success     200 {object} map[string]interface{} "Deletion confirmed"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /lancamentos/{id} [delete]
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	id := c.Param("id")
	if err := h.entryService.DeleteEntry(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("", "DELETE_ENTRY", "entry", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ImportStatement handles CSV bank-statement uploads.
// @Summary     Import a bank statement
// @Description Parse an uploaded CSV statement and insert its entries
// @Tags        entries
// @Accept      multipart/form-data
// @Produce     json
// @Param       arquivo formData file   true "CSV statement"
// @Param       usuario formData string true "Owner"
// @Success     201 {object} map[string]interface{} "Imported entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /lancamentos/importar [post]
func (h *EntryHandler) ImportStatement(c *gin.Context) {
	owner := c.PostForm("usuario")
	if owner == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "usuário não informado"))
		return
	}

	file, _, err := c.Request.FormFile("arquivo")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "arquivo CSV não enviado"))
		return
	}
	defer func() { _ = file.Close() }()

	records, err := statement.ParseCSV(file)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if len(records) == 0 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "nenhum lançamento encontrado no arquivo"))
		return
	}

	inputs := make([]services.EntryInput, 0, len(records))
	for _, r := range records {
		inputs = append(inputs, services.EntryInput{
			Type:        r.Type,
			Amount:      r.Amount,
			Category:    r.Category,
			Description: r.Description,
			Date:        r.Date,
			Status:      models.EntryStatusSettled,
		})
	}

	entries, err := h.entryService.CreateEntries(owner, inputs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(owner, "IMPORT_STATEMENT", "entry", "", c.ClientIP(),
		map[string]interface{}{"count": len(entries)})

	c.JSON(http.StatusCreated, gin.H{"lancamentos": entries, "total": len(entries)})
}

// InvertAccounts swaps the two partner accounts on every entry.
// @Summary     Invert partner accounts
// @Description Swap PARTNER_A and PARTNER_B on all entries
// @Tags        entries
// @Produce     json
// @Success     200 {object} map[string]interface{} "Swap count"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /inverter-contas [post]
func (h *EntryHandler) InvertAccounts(c *gin.Context) {
	swapped, err := h.entryService.InvertPartnerAccounts()
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("", "INVERT_ACCOUNTS", "entry", "", c.ClientIP(),
		map[string]interface{}{"swapped": swapped})

	c.JSON(http.StatusOK, gin.H{"success": true, "atualizados": swapped})
}
