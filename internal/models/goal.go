package models

// GoalType distinguishes spending limits from revenue targets.
type GoalType string

const (
	GoalTypeExpenseLimit GoalType = "EXPENSE_LIMIT"
	GoalTypeIncomeTarget GoalType = "INCOME_TARGET"
)

// Goal is a per-category target for a month (meta). Multiple goals per
// category/month are allowed; nothing enforces uniqueness here.
type Goal struct {
	Base
	Type     GoalType `gorm:"not null" json:"tipo"`
	Category string   `gorm:"not null" json:"categoria"`
	Limit    float64  `gorm:"not null" json:"limite"`
	Month    string   `gorm:"not null" json:"mes"`
}
