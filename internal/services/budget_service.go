package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/Nardoto/nardotos-finance/internal/errors"
	"github.com/Nardoto/nardotos-finance/internal/models"
)

// budgetService handles monthly budget business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// GetBudget returns the budget for an owner and month, or an empty budget
// when none has been saved yet.
func (s *budgetService) GetBudget(owner, month string) (*models.Budget, error) {
	if _, err := MonthPeriod(month); err != nil {
		return nil, err
	}

	var budget models.Budget
	err := s.db.Where("owner = ? AND month = ?", owner, month).First(&budget).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Budget{Owner: owner, Month: month, CategoryCaps: models.CategoryCaps{}}, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if budget.CategoryCaps == nil {
		budget.CategoryCaps = models.CategoryCaps{}
	}
	return &budget, nil
}

// UpsertBudget creates or replaces the budget for an owner and month.
// Category names are normalized before storage. The boolean reports
// whether a new row was created.
func (s *budgetService) UpsertBudget(owner, month string, globalCap *float64, caps models.CategoryCaps) (*models.Budget, bool, error) {
	if _, err := MonthPeriod(month); err != nil {
		return nil, false, err
	}
	if globalCap != nil && *globalCap < 0 {
		return nil, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "orçamento global deve ser positivo")
	}

	normalized := models.CategoryCaps{}
	for name, cap := range caps {
		if cap < 0 {
			return nil, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "limite de categoria deve ser positivo")
		}
		normalized[models.NormalizeCategory(name)] = cap
	}

	var budget models.Budget
	created := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("owner = ? AND month = ?", owner, month).First(&budget).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			budget = models.Budget{Owner: owner, Month: month, GlobalCap: globalCap, CategoryCaps: normalized}
			created = true
			if err := tx.Create(&budget).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			return nil
		}
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		budget.GlobalCap = globalCap
		budget.CategoryCaps = normalized
		if err := tx.Save(&budget).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &budget, created, nil
}
