package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/Nardoto/nardotos-finance/internal/errors"
	"github.com/Nardoto/nardotos-finance/internal/models"
	"github.com/Nardoto/nardotos-finance/internal/pagination"
)

// entryService handles entry-related business logic.
type entryService struct {
	db *gorm.DB
}

// NewEntryService creates a new EntryServicer.
func NewEntryService(db *gorm.DB) EntryServicer {
	return &entryService{db: db}
}

// CreateEntries inserts a batch of entries for a user. Categories unseen by
// the soft category table get a row created alongside, all within a single
// database transaction.
func (s *entryService) CreateEntries(owner string, inputs []EntryInput) ([]models.Entry, error) {
	if owner == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "usuário não informado")
	}
	if len(inputs) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "envie ao menos um lançamento")
	}
	for _, in := range inputs {
		if in.Amount < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "valor deve ser positivo; o sentido vem do tipo")
		}
		if in.Category == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "categoria é obrigatória")
		}
	}

	var saved []models.Entry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, in := range inputs {
			category := models.NormalizeCategory(in.Category)
			if err := ensureCategory(tx, category, in.Type); err != nil {
				return err
			}

			date := in.Date
			if date.IsZero() {
				date = time.Now().UTC()
			}
			status := in.Status
			if status == "" {
				status = models.EntryStatusSettled
			}

			entry := models.Entry{
				Type:        in.Type,
				Amount:      in.Amount,
				Category:    category,
				Description: in.Description,
				Date:        date,
				Status:      status,
				Account:     in.Account,
				Owner:       owner,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			saved = append(saved, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// ensureCategory creates a soft category row when the name is unseen.
func ensureCategory(tx *gorm.DB, name string, entryType models.EntryType) error {
	var count int64
	if err := tx.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil
	}
	if err := tx.Create(&models.Category{Name: name, Type: entryType}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListEntries returns a page of entries. With a month filter the economic
// date bounds the query and orders it; without one the listing falls back
// to most recently created.
func (s *entryService) ListEntries(filter EntryFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Entry], error) {
	page.Defaults()

	base := s.db.Model(&models.Entry{})
	order := "created_at DESC"

	if filter.MonthKey != "" {
		period, err := MonthPeriod(filter.MonthKey)
		if err != nil {
			return nil, err
		}
		base = base.Where("date >= ? AND date < ?", period.Start, period.End)
		order = "date DESC"
	}
	if filter.Account != nil {
		base = base.Where("account = ?", *filter.Account)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.Entry
	if err := base.Scopes(pagination.Paginate(page)).Order(order).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetEntryByID retrieves an entry by ID.
func (s *entryService) GetEntryByID(id string) (*models.Entry, error) {
	var entry models.Entry
	if err := s.db.Where("id = ?", id).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

// UpdateEntry applies typed field updates to an existing entry.
func (s *entryService) UpdateEntry(id string, fields EntryUpdate) (*models.Entry, error) {
	entry, err := s.GetEntryByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Type != nil {
		updates["type"] = *fields.Type
	}
	if fields.Amount != nil {
		if *fields.Amount < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "valor deve ser positivo; o sentido vem do tipo")
		}
		updates["amount"] = *fields.Amount
	}
	if fields.Category != nil {
		updates["category"] = models.NormalizeCategory(*fields.Category)
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Date != nil {
		updates["date"] = *fields.Date
	}
	if fields.Status != nil {
		updates["status"] = *fields.Status
	}
	if fields.Account != nil {
		updates["account"] = *fields.Account
	}

	if len(updates) > 0 {
		if err := s.db.Model(entry).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return entry, nil
}

// DeleteEntry soft-deletes an entry.
func (s *entryService) DeleteEntry(id string) error {
	entry, err := s.GetEntryByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// InvertPartnerAccounts swaps PARTNER_A and PARTNER_B on every entry.
// COMPANY entries stay untouched. Runs as a single batch so a failure
// cannot leave half the records swapped.
func (s *entryService) InvertPartnerAccounts() (int64, error) {
	const sentinel = "__SWAP__"

	var swapped int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		a := tx.Model(&models.Entry{}).Where("account = ?", models.AccountPartnerA).Update("account", sentinel)
		if a.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, a.Error)
		}
		b := tx.Model(&models.Entry{}).Where("account = ?", models.AccountPartnerB).Update("account", models.AccountPartnerA)
		if b.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, b.Error)
		}
		back := tx.Model(&models.Entry{}).Where("account = ?", sentinel).Update("account", models.AccountPartnerB)
		if back.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, back.Error)
		}
		swapped = a.RowsAffected + b.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return swapped, nil
}
