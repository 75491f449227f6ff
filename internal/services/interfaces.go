package services

import (
	"context"
	"time"

	"github.com/Nardoto/nardotos-finance/internal/gemini"
	"github.com/Nardoto/nardotos-finance/internal/models"
	"github.com/Nardoto/nardotos-finance/internal/pagination"
)

// EntryInput carries the fields accepted when creating an entry.
type EntryInput struct {
	Type        models.EntryType
	Amount      float64
	Category    string
	Description string
	Date        time.Time
	Status      models.EntryStatus
	Account     *models.EntryAccount
}

// EntryUpdate carries optional field updates for an entry. Nil means
// "leave unchanged".
type EntryUpdate struct {
	Type        *models.EntryType
	Amount      *float64
	Category    *string
	Description *string
	Date        *time.Time
	Status      *models.EntryStatus
	Account     *models.EntryAccount
}

// EntryFilter restricts entry listings.
type EntryFilter struct {
	MonthKey string
	Account  *models.EntryAccount
}

// EntryServicer defines the contract for entry-related business logic.
type EntryServicer interface {
	CreateEntries(owner string, inputs []EntryInput) ([]models.Entry, error)
	ListEntries(filter EntryFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Entry], error)
	GetEntryByID(id string) (*models.Entry, error)
	UpdateEntry(id string, fields EntryUpdate) (*models.Entry, error)
	DeleteEntry(id string) error
	InvertPartnerAccounts() (int64, error)
}

// PlanInput carries the fields accepted when creating a plan.
type PlanInput struct {
	Type        models.EntryType
	Description string
	Amount      float64
	DueDate     time.Time
	Category    string
	Recurring   bool
	Owner       string
}

// PlanUpdate carries optional field updates for a plan.
type PlanUpdate struct {
	Type        *models.EntryType
	Description *string
	Amount      *float64
	DueDate     *time.Time
	Category    *string
	Recurring   *bool
	Paid        *bool
}

// SettlementResult describes everything a settlement produced.
type SettlementResult struct {
	Plan      *models.Plan  `json:"conta"`
	Entry     *models.Entry `json:"lancamento"`
	Successor *models.Plan  `json:"proximaConta,omitempty"`
}

// PlanServicer defines the contract for scheduled-bill business logic.
type PlanServicer interface {
	CreatePlan(input PlanInput) (*models.Plan, error)
	ListPlans() ([]models.Plan, error)
	GetPlanByID(id string) (*models.Plan, error)
	UpdatePlan(id string, fields PlanUpdate) (*models.Plan, *SettlementResult, error)
	DeletePlan(id string) error
	SettlePlan(id string) (*SettlementResult, error)
}

// BudgetServicer defines the contract for monthly budget business logic.
type BudgetServicer interface {
	GetBudget(owner, month string) (*models.Budget, error)
	UpsertBudget(owner, month string, globalCap *float64, caps models.CategoryCaps) (*models.Budget, bool, error)
}

// GoalServicer defines the contract for goal business logic.
type GoalServicer interface {
	CreateGoal(goalType models.GoalType, category string, limit float64, month string) (*models.Goal, error)
	ListGoals() ([]models.Goal, error)
	DeleteGoal(id string) error
}

// CategoryServicer defines the contract for category business logic.
type CategoryServicer interface {
	ListNames() ([]string, error)
	Rename(oldName, newName string) (int64, error)
	Merge(source, destination string) (int64, error)
}

// SummaryServicer defines the contract for aggregation queries.
type SummaryServicer interface {
	Summarize(monthKey string, account *models.EntryAccount) (*Summary, error)
	CategoryBreakdown(monthKey string) (*CategoryReport, error)
	Dashboard() (*DashboardReport, error)
}

// InsightServicer defines the contract for period-over-period observations.
type InsightServicer interface {
	Generate(monthKey string, account *models.EntryAccount) (*InsightReport, error)
}

// ExtractionServicer defines the contract for LLM-backed extraction.
type ExtractionServicer interface {
	ExtractEntries(ctx context.Context, text, imageBase64 string) ([]gemini.ExtractedEntry, error)
	ExtractPlans(ctx context.Context, text string) ([]gemini.ExtractedPlan, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(owner, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
