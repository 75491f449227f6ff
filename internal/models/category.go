package models

// Category is the soft category table. It remembers metadata for category
// names seen in entries and plans, but the authoritative working set is
// always recomputed from the entries and plans themselves. This table can
// drift and is treated as eventually consistent.
type Category struct {
	Base
	Name string    `gorm:"not null;index" json:"nome"`
	Type EntryType `gorm:"not null" json:"tipo"`
}
