package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/Nardoto/nardotos-finance/internal/errors"
	"github.com/Nardoto/nardotos-finance/internal/models"
)

// planService handles scheduled-bill business logic.
type planService struct {
	db *gorm.DB
}

// NewPlanService creates a new PlanServicer.
func NewPlanService(db *gorm.DB) PlanServicer {
	return &planService{db: db}
}

// CreatePlan inserts a new scheduled bill, always unpaid. Bills default
// to EXPENSE when no type is given.
func (s *planService) CreatePlan(input PlanInput) (*models.Plan, error) {
	if input.Type == "" {
		input.Type = models.EntryTypeExpense
	}
	if input.Amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "valor deve ser positivo; o sentido vem do tipo")
	}
	if input.Category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "categoria é obrigatória")
	}
	if input.DueDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "data de vencimento é obrigatória")
	}

	plan := models.Plan{
		Type:        input.Type,
		Description: input.Description,
		Amount:      input.Amount,
		DueDate:     input.DueDate,
		Category:    models.NormalizeCategory(input.Category),
		Recurring:   input.Recurring,
		Paid:        false,
		Owner:       input.Owner,
	}
	if err := s.db.Create(&plan).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &plan, nil
}

// ListPlans returns every plan ordered by due date, unpaid first.
func (s *planService) ListPlans() ([]models.Plan, error) {
	var plans []models.Plan
	if err := s.db.Order("paid ASC, due_date ASC").Find(&plans).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return plans, nil
}

// GetPlanByID retrieves a plan by ID.
func (s *planService) GetPlanByID(id string) (*models.Plan, error) {
	var plan models.Plan
	if err := s.db.Where("id = ?", id).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &plan, nil
}

// UpdatePlan applies field updates to a plan. Setting paid to true routes
// through the settlement flow and returns its result; un-paying a settled
// plan is rejected because settlement already produced ledger records.
func (s *planService) UpdatePlan(id string, fields PlanUpdate) (*models.Plan, *SettlementResult, error) {
	plan, err := s.GetPlanByID(id)
	if err != nil {
		return nil, nil, err
	}

	if fields.Paid != nil {
		if *fields.Paid && !plan.Paid {
			result, err := s.SettlePlan(id)
			if err != nil {
				return nil, nil, err
			}
			return result.Plan, result, nil
		}
		if !*fields.Paid && plan.Paid {
			return nil, nil, apperrors.ErrPlanAlreadySettled
		}
	}

	updates := make(map[string]interface{})
	if fields.Type != nil {
		updates["type"] = *fields.Type
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Amount != nil {
		if *fields.Amount < 0 {
			return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "valor deve ser positivo; o sentido vem do tipo")
		}
		updates["amount"] = *fields.Amount
	}
	if fields.DueDate != nil {
		updates["due_date"] = *fields.DueDate
	}
	if fields.Category != nil {
		updates["category"] = models.NormalizeCategory(*fields.Category)
	}
	if fields.Recurring != nil {
		updates["recurring"] = *fields.Recurring
	}

	if len(updates) > 0 {
		if err := s.db.Model(plan).Updates(updates).Error; err != nil {
			return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return plan, nil, nil
}

// DeletePlan soft-deletes a plan. Entries already produced by settlement
// are kept.
func (s *planService) DeletePlan(id string) error {
	plan, err := s.GetPlanByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(plan).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SettlePlan marks a plan paid and records the corresponding ledger entry.
// For a recurring plan it also schedules next month's bill, with the due
// day clamped to the length of the target month. All three writes commit
// or roll back together.
func (s *planService) SettlePlan(id string) (*SettlementResult, error) {
	plan, err := s.GetPlanByID(id)
	if err != nil {
		return nil, err
	}
	if plan.Paid {
		return nil, apperrors.ErrPlanAlreadySettled
	}

	result := &SettlementResult{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(plan).Update("paid", true).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		entry := models.Entry{
			Type:         plan.Type,
			Amount:       plan.Amount,
			Category:     plan.Category,
			Description:  plan.Description,
			Date:         time.Now().UTC(),
			Status:       models.EntryStatusSettled,
			Owner:        plan.Owner,
			OriginPlanID: &plan.ID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		result.Entry = &entry

		if plan.Recurring {
			successor := models.Plan{
				Type:        plan.Type,
				Description: plan.Description,
				Amount:      plan.Amount,
				DueDate:     AddMonthClamped(plan.DueDate),
				Category:    plan.Category,
				Recurring:   true,
				Paid:        false,
				Owner:       plan.Owner,
			}
			if err := tx.Create(&successor).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			result.Successor = &successor
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Plan = plan
	return result, nil
}
