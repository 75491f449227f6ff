package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/Nardoto/nardotos-finance/internal/logger"
	"github.com/Nardoto/nardotos-finance/internal/models"
)

// auditService records who changed what. Failures are logged and swallowed
// so audit problems never fail the request they describe.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log writes one audit row.
func (s *auditService) Log(owner, action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	var serialized string
	if len(changes) > 0 {
		blob, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Warnw("failed to serialize audit changes", "error", err, "action", action)
		} else {
			serialized = string(blob)
		}
	}

	record := models.AuditLog{
		Owner:        owner,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      serialized,
	}
	if err := s.db.Create(&record).Error; err != nil {
		logger.Get().Warnw("failed to write audit log", "error", err, "action", action, "resource", resourceType)
	}
}
