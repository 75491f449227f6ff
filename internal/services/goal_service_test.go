package services

import (
	"testing"

	"github.com/Nardoto/nardotos-finance/internal/models"
	"github.com/Nardoto/nardotos-finance/internal/testutil"
)

func TestCreateGoal(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)

		goal, err := svc.CreateGoal(models.GoalTypeExpenseLimit, "Mercado", 800, "2025-03")
		testutil.AssertNoError(t, err)

		if goal.ID == "" {
			t.Fatal("expected non-empty goal ID")
		}
		if goal.Category != "MERCADO" {
			t.Errorf("expected normalized category, got %s", goal.Category)
		}
	})

	t.Run("zero_limit_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)

		_, err := svc.CreateGoal(models.GoalTypeExpenseLimit, "MERCADO", 0, "2025-03")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)

		_, err := svc.CreateGoal(models.GoalTypeIncomeTarget, "SALARIO", 5000, "2025/03")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicates_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)

		_, err := svc.CreateGoal(models.GoalTypeExpenseLimit, "MERCADO", 800, "2025-03")
		testutil.AssertNoError(t, err)
		_, err = svc.CreateGoal(models.GoalTypeExpenseLimit, "MERCADO", 600, "2025-03")
		testutil.AssertNoError(t, err)

		goals, err := svc.ListGoals()
		testutil.AssertNoError(t, err)
		if len(goals) != 2 {
			t.Errorf("expected 2 goals, got %d", len(goals))
		}
	})
}

func TestDeleteGoal(t *testing.T) {
	t.Run("deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		goal := testutil.CreateTestGoal(t, db, "MERCADO", 800, "2025-03")

		testutil.AssertNoError(t, svc.DeleteGoal(goal.ID))

		goals, err := svc.ListGoals()
		testutil.AssertNoError(t, err)
		if len(goals) != 0 {
			t.Errorf("expected no goals, got %d", len(goals))
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)

		testutil.AssertAppError(t, svc.DeleteGoal("missing-id"), "GOAL_NOT_FOUND")
	})
}
