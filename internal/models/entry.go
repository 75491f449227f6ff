package models

import "time"

// EntryType distinguishes income from expense. The stored amount is always
// positive; direction comes from the type, never from the number's sign.
type EntryType string

const (
	EntryTypeIncome  EntryType = "INCOME"
	EntryTypeExpense EntryType = "EXPENSE"
)

// EntryStatus marks whether an entry is realized or still pending.
// Settled entries count toward realized totals; pending entries only
// feed the separate pending bucket.
type EntryStatus string

const (
	EntryStatusSettled EntryStatus = "SETTLED"
	EntryStatusPending EntryStatus = "PENDING"
)

// EntryAccount is a secondary dimension for splitting household finances
// between the company and the two partners.
type EntryAccount string

const (
	AccountCompany  EntryAccount = "COMPANY"
	AccountPartnerA EntryAccount = "PARTNER_A"
	AccountPartnerB EntryAccount = "PARTNER_B"
)

// Entry is a single recorded financial transaction (lançamento).
type Entry struct {
	Base
	Type        EntryType     `gorm:"not null;index" json:"tipo"`
	Amount      float64       `gorm:"not null" json:"valor"`
	Category    string        `gorm:"not null;index" json:"categoria"`
	Description string        `json:"descricao"`
	Date        time.Time     `gorm:"not null;index" json:"data"`
	Status      EntryStatus   `gorm:"not null" json:"status"`
	Account     *EntryAccount `gorm:"index" json:"conta,omitempty"`
	Owner       string        `gorm:"not null" json:"usuario"`

	// Set when the entry was materialized by settling a scheduled plan.
	OriginPlanID *string `gorm:"type:uuid" json:"planoOrigemId,omitempty"`
}
