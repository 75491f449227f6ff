package services

import (
	"testing"
	"time"

	"github.com/Nardoto/nardotos-finance/internal/models"
	"github.com/Nardoto/nardotos-finance/internal/testutil"
)

func TestSummarize(t *testing.T) {
	march := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("settled_totals_and_pending_bucket", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		testutil.CreateTestIncome(t, db, "SALARIO", 500, march)
		testutil.CreateTestEntry(t, db, "FOOD", 100, march)
		testutil.CreateTestEntryFull(t, db, models.EntryTypeExpense, models.EntryStatusPending, "INTERNET", 120, march, nil)
		testutil.CreateTestEntryFull(t, db, models.EntryTypeIncome, models.EntryStatusPending, "FREELANCE", 300, march, nil)

		summary, err := svc.Summarize("2025-03", nil)
		testutil.AssertNoError(t, err)

		if summary.TotalIncome != 500 {
			t.Errorf("expected totalReceitas 500, got %f", summary.TotalIncome)
		}
		if summary.TotalExpense != 100 {
			t.Errorf("expected totalDespesas 100, got %f", summary.TotalExpense)
		}
		if summary.Balance != 400 {
			t.Errorf("expected saldo 400, got %f", summary.Balance)
		}
		if summary.TotalPending != 180 {
			t.Errorf("expected totalPendente 180, got %f", summary.TotalPending)
		}
		if summary.TotalEntries != 4 {
			t.Errorf("expected totalLancamentos 4, got %d", summary.TotalEntries)
		}
		if summary.OpeningBalance != 0 {
			t.Errorf("expected saldoAnterior 0, got %f", summary.OpeningBalance)
		}
		if summary.ClosingBalance != 400 {
			t.Errorf("expected saldoFinal 400, got %f", summary.ClosingBalance)
		}
		if len(summary.ExpenseByCategory) != 1 || summary.ExpenseByCategory[0].Category != "FOOD" || summary.ExpenseByCategory[0].Total != 100 {
			t.Errorf("unexpected expense breakdown: %+v", summary.ExpenseByCategory)
		}
	})

	t.Run("opening_balance_carries_prior_months", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		january := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestIncome(t, db, "SALARIO", 1000, january)
		testutil.CreateTestEntry(t, db, "MERCADO", 400, january)
		testutil.CreateTestEntry(t, db, "MERCADO", 50, march)

		summary, err := svc.Summarize("2025-03", nil)
		testutil.AssertNoError(t, err)

		if summary.OpeningBalance != 600 {
			t.Errorf("expected saldoAnterior 600, got %f", summary.OpeningBalance)
		}
		if summary.ClosingBalance != 550 {
			t.Errorf("expected saldoFinal 550, got %f", summary.ClosingBalance)
		}
	})

	t.Run("account_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		company := models.AccountCompany
		partner := models.AccountPartnerA
		testutil.CreateTestEntryFull(t, db, models.EntryTypeExpense, models.EntryStatusSettled, "MERCADO", 100, march, &company)
		testutil.CreateTestEntryFull(t, db, models.EntryTypeExpense, models.EntryStatusSettled, "MERCADO", 999, march, &partner)

		summary, err := svc.Summarize("2025-03", &company)
		testutil.AssertNoError(t, err)

		if summary.TotalExpense != 100 {
			t.Errorf("expected company expenses only, got %f", summary.TotalExpense)
		}
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)

		_, err := svc.Summarize("março", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("empty_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)

		summary, err := svc.Summarize("2025-03", nil)
		testutil.AssertNoError(t, err)

		if summary.TotalIncome != 0 || summary.TotalExpense != 0 || summary.Balance != 0 {
			t.Error("expected zero totals for empty month")
		}
		if summary.ExpenseByCategory == nil || summary.IncomeByCategory == nil {
			t.Error("expected empty slices, not nil")
		}
	})
}

func TestCategoryBreakdown(t *testing.T) {
	march := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("percentages_sum_to_100", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		testutil.CreateTestEntry(t, db, "MERCADO", 300, march)
		testutil.CreateTestEntry(t, db, "TRANSPORTE", 100, march)

		report, err := svc.CategoryBreakdown("2025-03")
		testutil.AssertNoError(t, err)

		if report.Total != 400 {
			t.Errorf("expected totalGeral 400, got %f", report.Total)
		}
		if len(report.Categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(report.Categories))
		}
		if report.Categories[0].Category != "MERCADO" || report.Categories[0].Percentage != 75 {
			t.Errorf("unexpected top category: %+v", report.Categories[0])
		}
		var sum float64
		for _, c := range report.Categories {
			sum += c.Percentage
		}
		if sum < 99.9 || sum > 100.1 {
			t.Errorf("expected percentages to sum to 100, got %f", sum)
		}
	})

	t.Run("counts_all_statuses_and_types", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		testutil.CreateTestEntry(t, db, "MERCADO", 300, march)
		testutil.CreateTestEntryFull(t, db, models.EntryTypeExpense, models.EntryStatusPending, "MERCADO", 100, march, nil)
		testutil.CreateTestIncome(t, db, "SALARIO", 600, march)

		report, err := svc.CategoryBreakdown("2025-03")
		testutil.AssertNoError(t, err)

		if report.Total != 1000 {
			t.Errorf("expected totalGeral 1000, got %f", report.Total)
		}
		if len(report.Categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(report.Categories))
		}
		top := report.Categories[0]
		if top.Category != "SALARIO" || top.Count != 1 || top.Percentage != 60 {
			t.Errorf("unexpected top category: %+v", top)
		}
		second := report.Categories[1]
		if second.Category != "MERCADO" || second.Count != 2 || second.Total != 400 {
			t.Errorf("unexpected second category: %+v", second)
		}
		// Top entries stay expense-only.
		if len(report.TopEntries) != 2 || report.TopEntries[0].Amount != 300 {
			t.Errorf("unexpected top entries: %+v", report.TopEntries)
		}
	})

	t.Run("top_entries_limited_to_five", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		for i := 1; i <= 7; i++ {
			testutil.CreateTestEntry(t, db, "MERCADO", float64(i*10), march)
		}

		report, err := svc.CategoryBreakdown("2025-03")
		testutil.AssertNoError(t, err)

		if len(report.TopEntries) != 5 {
			t.Fatalf("expected 5 top entries, got %d", len(report.TopEntries))
		}
		if report.TopEntries[0].Amount != 70 {
			t.Errorf("expected largest expense first, got %f", report.TopEntries[0].Amount)
		}
	})

	t.Run("zero_total_yields_zero_percentages", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)

		report, err := svc.CategoryBreakdown("2025-03")
		testutil.AssertNoError(t, err)

		if report.Total != 0 || len(report.Categories) != 0 {
			t.Errorf("expected empty report, got %+v", report)
		}
	})
}

func TestDashboard(t *testing.T) {
	t.Run("ascending_months_with_entries_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		testutil.CreateTestIncome(t, db, "SALARIO", 1000, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC))
		testutil.CreateTestEntry(t, db, "MERCADO", 200, time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC))
		testutil.CreateTestEntry(t, db, "MERCADO", 300, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

		report, err := svc.Dashboard()
		testutil.AssertNoError(t, err)

		if len(report.Months) != 2 {
			t.Fatalf("expected 2 months, got %d", len(report.Months))
		}
		if report.Months[0].Month != "2025-01" || report.Months[1].Month != "2025-03" {
			t.Errorf("expected ascending months without gaps filled, got %+v", report.Months)
		}
		if report.Months[0].Balance != 800 {
			t.Errorf("expected january balance 800, got %f", report.Months[0].Balance)
		}
		if report.Months[0].Entries != 2 {
			t.Errorf("expected 2 january entries, got %d", report.Months[0].Entries)
		}
		jan := report.Months[0]
		if len(jan.TopCategories) != 1 || jan.TopCategories[0].Category != "MERCADO" || jan.TopCategories[0].Total != 200 {
			t.Errorf("unexpected january categories: %+v", jan.TopCategories)
		}
		if report.Totals.TotalIncome != 1000 || report.Totals.TotalExpense != 500 || report.Totals.Entries != 3 {
			t.Errorf("unexpected grand totals: %+v", report.Totals)
		}
	})

	t.Run("top_categories_capped_at_five", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		for i, cat := range []string{"A", "B", "C", "D", "E", "F", "G"} {
			testutil.CreateTestEntry(t, db, cat, float64((i+1)*10), date)
		}

		report, err := svc.Dashboard()
		testutil.AssertNoError(t, err)

		june := report.Months[0]
		if len(june.TopCategories) != 5 {
			t.Fatalf("expected 5 categories, got %d", len(june.TopCategories))
		}
		if june.TopCategories[0].Category != "G" || june.TopCategories[0].Total != 70 {
			t.Errorf("expected biggest category first, got %+v", june.TopCategories[0])
		}
	})

	t.Run("pending_entries_excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		testutil.CreateTestEntryFull(t, db, models.EntryTypeExpense, models.EntryStatusPending, "MERCADO", 100,
			time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), nil)

		report, err := svc.Dashboard()
		testutil.AssertNoError(t, err)

		if len(report.Months) != 0 {
			t.Errorf("expected no months, got %+v", report.Months)
		}
	})
}
