package models

// AuditLog records destructive multi-record operations (category rename and
// merge, plan settlement, account inversion) so partial failures and
// surprising data states can be traced back to the call that caused them.
type AuditLog struct {
	Base
	Owner        string `gorm:"index" json:"usuario"`
	Action       string `gorm:"not null" json:"acao"`
	ResourceType string `gorm:"not null" json:"recurso"`
	ResourceID   string `json:"recursoId"`
	IPAddress    string `json:"ip"`
	Changes      string `json:"detalhes,omitempty"`
}
