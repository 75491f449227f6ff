package services

import (
	"sort"

	"gorm.io/gorm"

	apperrors "github.com/Nardoto/nardotos-finance/internal/errors"
	"github.com/Nardoto/nardotos-finance/internal/models"
)

// defaultCategories seed the vocabulary so pickers are never empty on a
// fresh install.
var defaultCategories = []string{
	"ALIMENTACAO", "TRANSPORTE", "MORADIA", "SAUDE", "EDUCACAO",
	"LAZER", "VESTUARIO", "SERVICOS", "OUTROS",
}

// categoryService handles category vocabulary maintenance.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// ListNames returns the union of the default vocabulary and every category
// seen on entries or plans, deduplicated and sorted.
func (s *categoryService) ListNames() ([]string, error) {
	seen := make(map[string]bool)
	for _, name := range defaultCategories {
		seen[name] = true
	}

	var fromEntries []string
	if err := s.db.Model(&models.Entry{}).Distinct("category").Pluck("category", &fromEntries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var fromPlans []string
	if err := s.db.Model(&models.Plan{}).Distinct("category").Pluck("category", &fromPlans).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, name := range append(fromEntries, fromPlans...) {
		if name != "" {
			seen[name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Rename moves every entry and plan from one category name to another and
// returns how many records changed. Rename and merge are the same batch
// operation; merge just targets a name that already exists.
func (s *categoryService) Rename(oldName, newName string) (int64, error) {
	return s.retag(oldName, newName)
}

// Merge folds the source category into the destination.
func (s *categoryService) Merge(source, destination string) (int64, error) {
	return s.retag(source, destination)
}

func (s *categoryService) retag(from, to string) (int64, error) {
	from = models.NormalizeCategory(from)
	to = models.NormalizeCategory(to)
	if from == "" || to == "" {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "nome de categoria não pode ser vazio")
	}
	if from == to {
		return 0, nil
	}

	var changed int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		entries := tx.Model(&models.Entry{}).Where("category = ?", from).Update("category", to)
		if entries.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, entries.Error)
		}
		plans := tx.Model(&models.Plan{}).Where("category = ?", from).Update("category", to)
		if plans.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, plans.Error)
		}

		// Retag the soft vocabulary row too, dropping it when the
		// destination already exists.
		var existing int64
		if err := tx.Model(&models.Category{}).Where("name = ?", to).Count(&existing).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if existing > 0 {
			if err := tx.Where("name = ?", from).Delete(&models.Category{}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		} else {
			if err := tx.Model(&models.Category{}).Where("name = ?", from).Update("name", to).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		changed = entries.RowsAffected + plans.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}
