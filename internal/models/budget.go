package models

// CategoryCaps maps category name → monthly spending cap.
type CategoryCaps map[string]float64

// Budget holds a user's spending caps for one month (orçamento).
// At most one row exists per (owner, month); writes upsert by that
// compound key, never by id alone.
type Budget struct {
	Base
	Owner        string       `gorm:"not null;uniqueIndex:idx_budget_owner_month" json:"usuario"`
	Month        string       `gorm:"not null;uniqueIndex:idx_budget_owner_month" json:"mes"`
	GlobalCap    *float64     `json:"orcamentoGlobal"`
	CategoryCaps CategoryCaps `gorm:"serializer:json" json:"categorias"`
}
