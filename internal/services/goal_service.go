package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/Nardoto/nardotos-finance/internal/errors"
	"github.com/Nardoto/nardotos-finance/internal/models"
)

// goalService handles goal business logic.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal inserts a new monthly goal.
func (s *goalService) CreateGoal(goalType models.GoalType, category string, limit float64, month string) (*models.Goal, error) {
	if _, err := MonthPeriod(month); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limite deve ser maior que zero")
	}
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "categoria é obrigatória")
	}

	goal := models.Goal{
		Type:     goalType,
		Category: models.NormalizeCategory(category),
		Limit:    limit,
		Month:    month,
	}
	if err := s.db.Create(&goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// ListGoals returns every goal, most recent month first.
func (s *goalService) ListGoals() ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.db.Order("month DESC, category ASC").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// DeleteGoal soft-deletes a goal.
func (s *goalService) DeleteGoal(id string) error {
	var goal models.Goal
	if err := s.db.Where("id = ?", id).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrGoalNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Delete(&goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
