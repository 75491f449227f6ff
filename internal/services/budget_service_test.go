package services

import (
	"testing"

	"github.com/Nardoto/nardotos-finance/internal/models"
	"github.com/Nardoto/nardotos-finance/internal/testutil"
)

func TestUpsertBudget(t *testing.T) {
	t.Run("creates_then_replaces", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		global := 3000.0
		budget, created, err := svc.UpsertBudget("nardoto", "2025-03", &global, models.CategoryCaps{"Mercado": 800})
		testutil.AssertNoError(t, err)

		if !created {
			t.Error("expected first upsert to create")
		}
		if budget.GlobalCap == nil || *budget.GlobalCap != 3000 {
			t.Errorf("expected global cap 3000, got %v", budget.GlobalCap)
		}
		if budget.CategoryCaps["MERCADO"] != 800 {
			t.Errorf("expected normalized category cap, got %v", budget.CategoryCaps)
		}

		newGlobal := 2500.0
		replaced, created, err := svc.UpsertBudget("nardoto", "2025-03", &newGlobal, models.CategoryCaps{"LAZER": 200})
		testutil.AssertNoError(t, err)

		if created {
			t.Error("expected second upsert to update")
		}
		if replaced.ID != budget.ID {
			t.Error("expected the same budget row")
		}
		if *replaced.GlobalCap != 2500 {
			t.Errorf("expected global cap 2500, got %f", *replaced.GlobalCap)
		}
		if _, ok := replaced.CategoryCaps["MERCADO"]; ok {
			t.Error("expected old caps replaced, not merged")
		}

		var count int64
		db.Model(&models.Budget{}).Count(&count)
		if count != 1 {
			t.Errorf("expected a single budget row, got %d", count)
		}
	})

	t.Run("separate_rows_per_owner_and_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		_, _, err := svc.UpsertBudget("nardoto", "2025-03", nil, nil)
		testutil.AssertNoError(t, err)
		_, _, err = svc.UpsertBudget("marina", "2025-03", nil, nil)
		testutil.AssertNoError(t, err)
		_, _, err = svc.UpsertBudget("nardoto", "2025-04", nil, nil)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.Budget{}).Count(&count)
		if count != 3 {
			t.Errorf("expected 3 budget rows, got %d", count)
		}
	})

	t.Run("negative_cap_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		bad := -100.0
		_, _, err := svc.UpsertBudget("nardoto", "2025-03", &bad, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		_, _, err := svc.UpsertBudget("nardoto", "03/2025", nil, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetBudget(t *testing.T) {
	t.Run("missing_month_returns_empty_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		budget, err := svc.GetBudget("nardoto", "2025-03")
		testutil.AssertNoError(t, err)

		if budget.ID != "" {
			t.Error("expected unsaved empty budget")
		}
		if budget.GlobalCap != nil {
			t.Error("expected nil global cap")
		}
		if budget.CategoryCaps == nil {
			t.Error("expected empty caps map, not nil")
		}
	})

	t.Run("returns_saved_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		global := 1000.0
		_, _, err := svc.UpsertBudget("nardoto", "2025-03", &global, models.CategoryCaps{"MERCADO": 400})
		testutil.AssertNoError(t, err)

		budget, err := svc.GetBudget("nardoto", "2025-03")
		testutil.AssertNoError(t, err)

		if budget.GlobalCap == nil || *budget.GlobalCap != 1000 {
			t.Errorf("expected global cap 1000, got %v", budget.GlobalCap)
		}
		if budget.CategoryCaps["MERCADO"] != 400 {
			t.Errorf("expected MERCADO cap 400, got %v", budget.CategoryCaps)
		}
	})
}
