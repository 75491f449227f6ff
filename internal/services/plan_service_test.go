package services

import (
	"testing"
	"time"

	"github.com/Nardoto/nardotos-finance/internal/models"
	"github.com/Nardoto/nardotos-finance/internal/testutil"
)

func TestCreatePlan(t *testing.T) {
	due := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)

		plan, err := svc.CreatePlan(PlanInput{
			Type:        models.EntryTypeExpense,
			Description: "Internet",
			Amount:      120,
			DueDate:     due,
			Category:    "internet",
			Recurring:   true,
			Owner:       "nardoto",
		})
		testutil.AssertNoError(t, err)

		if plan.ID == "" {
			t.Fatal("expected non-empty plan ID")
		}
		if plan.Paid {
			t.Error("expected new plan to be unpaid")
		}
		if plan.Category != "INTERNET" {
			t.Errorf("expected normalized category INTERNET, got %s", plan.Category)
		}
	})

	t.Run("defaults_to_expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)

		plan, err := svc.CreatePlan(PlanInput{
			Amount:   80,
			DueDate:  due,
			Category: "luz",
			Owner:    "nardoto",
		})
		testutil.AssertNoError(t, err)

		if plan.Type != models.EntryTypeExpense {
			t.Errorf("expected EXPENSE default, got %s", plan.Type)
		}
	})

	t.Run("missing_due_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)

		_, err := svc.CreatePlan(PlanInput{Type: models.EntryTypeExpense, Amount: 10, Category: "INTERNET"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestSettlePlan(t *testing.T) {
	due := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	t.Run("non_recurring", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		plan := testutil.CreateTestPlan(t, db, "INTERNET", 120, due, false)

		result, err := svc.SettlePlan(plan.ID)
		testutil.AssertNoError(t, err)

		if !result.Plan.Paid {
			t.Error("expected plan to be marked paid")
		}
		if result.Entry == nil {
			t.Fatal("expected a settlement entry")
		}
		if result.Entry.Status != models.EntryStatusSettled {
			t.Errorf("expected settled entry, got %s", result.Entry.Status)
		}
		if result.Entry.OriginPlanID == nil || *result.Entry.OriginPlanID != plan.ID {
			t.Error("expected entry to reference the settled plan")
		}
		if result.Successor != nil {
			t.Error("expected no successor for non-recurring plan")
		}

		var planCount int64
		db.Model(&models.Plan{}).Count(&planCount)
		if planCount != 1 {
			t.Errorf("expected 1 plan after settlement, got %d", planCount)
		}
	})

	t.Run("recurring_schedules_successor", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		plan := testutil.CreateTestPlan(t, db, "INTERNET", 120, due, true)

		result, err := svc.SettlePlan(plan.ID)
		testutil.AssertNoError(t, err)

		if result.Successor == nil {
			t.Fatal("expected a successor plan")
		}
		if result.Successor.Paid {
			t.Error("expected successor to be unpaid")
		}
		want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		if !result.Successor.DueDate.Equal(want) {
			t.Errorf("expected successor due %s, got %s", want, result.Successor.DueDate)
		}
	})

	t.Run("due_day_clamps_to_short_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		jan31 := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
		plan := testutil.CreateTestPlan(t, db, "ALUGUEL", 1500, jan31, true)

		result, err := svc.SettlePlan(plan.ID)
		testutil.AssertNoError(t, err)

		want := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
		if !result.Successor.DueDate.Equal(want) {
			t.Errorf("expected successor due %s, got %s", want, result.Successor.DueDate)
		}
	})

	t.Run("already_settled", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		plan := testutil.CreateTestPlan(t, db, "INTERNET", 120, due, false)

		_, err := svc.SettlePlan(plan.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.SettlePlan(plan.ID)
		testutil.AssertAppError(t, err, "PLAN_ALREADY_SETTLED")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)

		_, err := svc.SettlePlan("missing-id")
		testutil.AssertAppError(t, err, "PLAN_NOT_FOUND")
	})
}

func TestUpdatePlan(t *testing.T) {
	due := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	t.Run("paid_true_routes_through_settlement", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		plan := testutil.CreateTestPlan(t, db, "INTERNET", 120, due, false)

		paid := true
		updated, settlement, err := svc.UpdatePlan(plan.ID, PlanUpdate{Paid: &paid})
		testutil.AssertNoError(t, err)

		if settlement == nil {
			t.Fatal("expected a settlement result")
		}
		if !updated.Paid {
			t.Error("expected plan to be marked paid")
		}
		if settlement.Entry == nil {
			t.Error("expected a settlement entry")
		}
	})

	t.Run("unpay_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		plan := testutil.CreateTestPlan(t, db, "INTERNET", 120, due, false)

		_, err := svc.SettlePlan(plan.ID)
		testutil.AssertNoError(t, err)

		unpaid := false
		_, _, err = svc.UpdatePlan(plan.ID, PlanUpdate{Paid: &unpaid})
		testutil.AssertAppError(t, err, "PLAN_ALREADY_SETTLED")
	})

	t.Run("field_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		plan := testutil.CreateTestPlan(t, db, "INTERNET", 120, due, false)

		amount := 135.0
		updated, settlement, err := svc.UpdatePlan(plan.ID, PlanUpdate{Amount: &amount})
		testutil.AssertNoError(t, err)

		if settlement != nil {
			t.Error("expected no settlement for a plain field update")
		}
		if updated.Amount != 135 {
			t.Errorf("expected amount 135, got %f", updated.Amount)
		}
	})
}

func TestDeletePlan(t *testing.T) {
	due := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	t.Run("keeps_settlement_entries", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		plan := testutil.CreateTestPlan(t, db, "INTERNET", 120, due, false)

		_, err := svc.SettlePlan(plan.ID)
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeletePlan(plan.ID))

		var entryCount int64
		db.Model(&models.Entry{}).Count(&entryCount)
		if entryCount != 1 {
			t.Errorf("expected settlement entry to survive plan deletion, got %d entries", entryCount)
		}
	})
}

func TestListPlans(t *testing.T) {
	t.Run("unpaid_first_by_due_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPlanService(db)
		late := testutil.CreateTestPlan(t, db, "INTERNET", 120, time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), false)
		early := testutil.CreateTestPlan(t, db, "ALUGUEL", 1500, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), false)

		plans, err := svc.ListPlans()
		testutil.AssertNoError(t, err)

		if len(plans) != 2 {
			t.Fatalf("expected 2 plans, got %d", len(plans))
		}
		if plans[0].ID != early.ID || plans[1].ID != late.ID {
			t.Error("expected plans ordered by due date")
		}
	})
}
