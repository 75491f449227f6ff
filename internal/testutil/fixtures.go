package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Nardoto/nardotos-finance/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestEntry creates a settled expense on the given date.
func CreateTestEntry(t *testing.T, db *gorm.DB, category string, amount float64, date time.Time) *models.Entry {
	t.Helper()
	return CreateTestEntryFull(t, db, models.EntryTypeExpense, models.EntryStatusSettled, category, amount, date, nil)
}

// CreateTestIncome creates a settled income entry on the given date.
func CreateTestIncome(t *testing.T, db *gorm.DB, category string, amount float64, date time.Time) *models.Entry {
	t.Helper()
	return CreateTestEntryFull(t, db, models.EntryTypeIncome, models.EntryStatusSettled, category, amount, date, nil)
}

// CreateTestEntryFull creates an entry with every axis under the caller's control.
func CreateTestEntryFull(t *testing.T, db *gorm.DB, entryType models.EntryType, status models.EntryStatus, category string, amount float64, date time.Time, account *models.EntryAccount) *models.Entry {
	t.Helper()

	entry := &models.Entry{
		Type:        entryType,
		Amount:      amount,
		Category:    category,
		Description: fmt.Sprintf("Test entry %d", nextID()),
		Date:        date,
		Status:      status,
		Account:     account,
		Owner:       "tester",
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test entry: %v", err)
	}
	return entry
}

// CreateTestPlan creates an unpaid plan due on the given date.
func CreateTestPlan(t *testing.T, db *gorm.DB, category string, amount float64, dueDate time.Time, recurring bool) *models.Plan {
	t.Helper()

	plan := &models.Plan{
		Type:        models.EntryTypeExpense,
		Description: fmt.Sprintf("Test plan %d", nextID()),
		Amount:      amount,
		DueDate:     dueDate,
		Category:    category,
		Recurring:   recurring,
		Paid:        false,
		Owner:       "tester",
	}
	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("failed to create test plan: %v", err)
	}
	return plan
}

// CreateTestGoal creates an expense-limit goal for the given month.
func CreateTestGoal(t *testing.T, db *gorm.DB, category string, limit float64, month string) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		Type:     models.GoalTypeExpenseLimit,
		Category: category,
		Limit:    limit,
		Month:    month,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}
