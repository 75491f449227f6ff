package services

import (
	"sort"

	"gorm.io/gorm"

	apperrors "github.com/Nardoto/nardotos-finance/internal/errors"
	"github.com/Nardoto/nardotos-finance/internal/models"
)

// CategoryTotal is one category's aggregated amount.
type CategoryTotal struct {
	Category string  `json:"categoria"`
	Total    float64 `json:"valor"`
}

// Summary is the monthly financial overview.
type Summary struct {
	Month             string          `json:"mes"`
	TotalIncome       float64         `json:"totalReceitas"`
	TotalExpense      float64         `json:"totalDespesas"`
	Balance           float64         `json:"saldo"`
	TotalPending      float64         `json:"totalPendente"`
	TotalEntries      int64           `json:"totalLancamentos"`
	OpeningBalance    float64         `json:"saldoAnterior"`
	ClosingBalance    float64         `json:"saldoFinal"`
	ExpenseByCategory []CategoryTotal `json:"porCategoria"`
	IncomeByCategory  []CategoryTotal `json:"receitasPorCategoria"`
}

// CategorySlice is one category's share of the month's activity.
type CategorySlice struct {
	Category   string  `json:"categoria"`
	Total      float64 `json:"total"`
	Count      int64   `json:"quantidade"`
	Percentage float64 `json:"percentual"`
}

// CategoryReport breaks the month's activity down by category.
type CategoryReport struct {
	Month      string          `json:"mes"`
	Categories []CategorySlice `json:"categorias"`
	TopEntries []models.Entry  `json:"maioresLancamentos"`
	Total      float64         `json:"totalGeral"`
}

// DashboardMonth is one month's totals in the historical dashboard.
type DashboardMonth struct {
	Month         string          `json:"mes"`
	TotalIncome   float64         `json:"totalReceitas"`
	TotalExpense  float64         `json:"totalDespesas"`
	Balance       float64         `json:"saldo"`
	Entries       int64           `json:"lancamentos"`
	TopCategories []CategoryTotal `json:"porCategoria"`
}

// DashboardTotals sums the dashboard across all months.
type DashboardTotals struct {
	TotalIncome  float64 `json:"totalReceitas"`
	TotalExpense float64 `json:"totalDespesas"`
	Entries      int64   `json:"lancamentos"`
}

// DashboardReport is the month-by-month history of settled activity.
type DashboardReport struct {
	Months []DashboardMonth `json:"meses"`
	Totals DashboardTotals  `json:"totalGeral"`
}

// summaryService answers aggregation queries over the entry ledger.
type summaryService struct {
	db *gorm.DB
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(db *gorm.DB) SummaryServicer {
	return &summaryService{db: db}
}

// settledInPeriod scopes a query to settled entries whose economic date
// falls inside the period.
func settledInPeriod(db *gorm.DB, p Period) *gorm.DB {
	return db.Model(&models.Entry{}).
		Where("status = ?", models.EntryStatusSettled).
		Where("date >= ? AND date < ?", p.Start, p.End)
}

// Summarize computes the month's totals. Settled entries drive income,
// expense and balance; pending entries only feed the signed pending bucket.
// The opening balance carries every settled entry dated before the month.
func (s *summaryService) Summarize(monthKey string, account *models.EntryAccount) (*Summary, error) {
	period, err := MonthPeriod(monthKey)
	if err != nil {
		return nil, err
	}

	scoped := func(db *gorm.DB) *gorm.DB {
		if account != nil {
			return db.Where("account = ?", *account)
		}
		return db
	}

	summary := &Summary{
		Month:             monthKey,
		ExpenseByCategory: []CategoryTotal{},
		IncomeByCategory:  []CategoryTotal{},
	}

	type sums struct {
		Income  float64
		Expense float64
	}
	var current sums
	err = scoped(settledInPeriod(s.db, period)).
		Select("COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount ELSE 0 END), 0) AS income, COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN amount ELSE 0 END), 0) AS expense").
		Scan(&current).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	summary.TotalIncome = current.Income
	summary.TotalExpense = current.Expense
	summary.Balance = current.Income - current.Expense

	// Pending entries net out with their natural sign.
	err = scoped(s.db.Model(&models.Entry{}).
		Where("status = ?", models.EntryStatusPending).
		Where("date >= ? AND date < ?", period.Start, period.End)).
		Select("COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount ELSE -amount END), 0)").
		Scan(&summary.TotalPending).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = scoped(s.db.Model(&models.Entry{}).
		Where("date >= ? AND date < ?", period.Start, period.End)).
		Count(&summary.TotalEntries).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = scoped(s.db.Model(&models.Entry{}).
		Where("status = ?", models.EntryStatusSettled).
		Where("date < ?", period.Start)).
		Select("COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount ELSE -amount END), 0)").
		Scan(&summary.OpeningBalance).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	summary.ClosingBalance = summary.OpeningBalance + summary.Balance

	expenses, err := s.categoryTotals(scoped(settledInPeriod(s.db, period)), models.EntryTypeExpense)
	if err != nil {
		return nil, err
	}
	if len(expenses) > 10 {
		expenses = expenses[:10]
	}
	summary.ExpenseByCategory = expenses

	incomes, err := s.categoryTotals(scoped(settledInPeriod(s.db, period)), models.EntryTypeIncome)
	if err != nil {
		return nil, err
	}
	summary.IncomeByCategory = incomes

	return summary, nil
}

func (s *summaryService) categoryTotals(query *gorm.DB, entryType models.EntryType) ([]CategoryTotal, error) {
	var totals []CategoryTotal
	err := query.
		Where("type = ?", entryType).
		Select("category, SUM(amount) AS total").
		Group("category").
		Order("total DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if totals == nil {
		totals = []CategoryTotal{}
	}
	return totals, nil
}

// CategoryBreakdown reports each category's share of the month's activity
// plus the five largest individual expenses. Every entry in the period
// counts, pending included.
func (s *summaryService) CategoryBreakdown(monthKey string) (*CategoryReport, error) {
	period, err := MonthPeriod(monthKey)
	if err != nil {
		return nil, err
	}

	inPeriod := func() *gorm.DB {
		return s.db.Model(&models.Entry{}).
			Where("date >= ? AND date < ?", period.Start, period.End)
	}

	var rows []CategorySlice
	err = inPeriod().
		Select("category, SUM(amount) AS total, COUNT(*) AS count").
		Group("category").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	report := &CategoryReport{
		Month:      monthKey,
		Categories: []CategorySlice{},
		TopEntries: []models.Entry{},
	}
	for _, r := range rows {
		report.Total += r.Total
	}
	for _, r := range rows {
		if report.Total > 0 {
			r.Percentage = r.Total / report.Total * 100
		}
		report.Categories = append(report.Categories, r)
	}

	err = inPeriod().
		Where("type = ?", models.EntryTypeExpense).
		Order("amount DESC").
		Limit(5).
		Find(&report.TopEntries).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return report, nil
}

// Dashboard returns one row per month that has at least one settled entry,
// in ascending month order.
func (s *summaryService) Dashboard() (*DashboardReport, error) {
	var entries []models.Entry
	err := s.db.Model(&models.Entry{}).
		Where("status = ?", models.EntryStatusSettled).
		Select("type, amount, category, date").
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Month bucketing happens here rather than in SQL because date
	// truncation syntax differs between the backing databases.
	byMonth := make(map[string]*DashboardMonth)
	expenseByCategory := make(map[string]map[string]float64)
	for _, e := range entries {
		key := MonthKey(e.Date.UTC())
		month, ok := byMonth[key]
		if !ok {
			month = &DashboardMonth{Month: key, TopCategories: []CategoryTotal{}}
			byMonth[key] = month
			expenseByCategory[key] = make(map[string]float64)
		}
		month.Entries++
		if e.Type == models.EntryTypeIncome {
			month.TotalIncome += e.Amount
		} else {
			month.TotalExpense += e.Amount
			expenseByCategory[key][e.Category] += e.Amount
		}
	}

	report := &DashboardReport{Months: []DashboardMonth{}}
	for key, month := range byMonth {
		month.Balance = month.TotalIncome - month.TotalExpense

		cats := make([]CategoryTotal, 0, len(expenseByCategory[key]))
		for name, total := range expenseByCategory[key] {
			cats = append(cats, CategoryTotal{Category: name, Total: total})
		}
		sort.Slice(cats, func(i, j int) bool {
			if cats[i].Total != cats[j].Total {
				return cats[i].Total > cats[j].Total
			}
			return cats[i].Category < cats[j].Category
		})
		if len(cats) > 5 {
			cats = cats[:5]
		}
		month.TopCategories = cats

		report.Totals.TotalIncome += month.TotalIncome
		report.Totals.TotalExpense += month.TotalExpense
		report.Totals.Entries += month.Entries

		report.Months = append(report.Months, *month)
	}
	sort.Slice(report.Months, func(i, j int) bool {
		return report.Months[i].Month < report.Months[j].Month
	})
	return report, nil
}
