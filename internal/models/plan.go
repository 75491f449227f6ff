package models

import "time"

// Plan is a scheduled future bill or expected receipt (planejamento).
// Settling a plan (paid false→true) materializes an Entry; the transition
// is one-way.
type Plan struct {
	Base
	Type        EntryType `gorm:"not null" json:"tipo"`
	Description string    `json:"descricao"`
	Amount      float64   `gorm:"not null" json:"valor"`
	DueDate     time.Time `gorm:"not null;index" json:"dataVencimento"`
	Category    string    `gorm:"not null;index" json:"categoria"`
	Recurring   bool      `gorm:"default:false" json:"recorrente"`
	Paid        bool      `gorm:"default:false" json:"paga"`
	Owner       string    `gorm:"not null" json:"usuario"`
}
