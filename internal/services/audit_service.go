package services

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"expensebook/internal/events"
	"expensebook/internal/logger"
	"expensebook/internal/models"
)

// Audit actions.
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// Audited resource types.
const (
	AuditResourceCategory = "category"
	AuditResourceExpense  = "expense"
	AuditResourceUser     = "user"
)

// auditService records audit log rows and forwards them to a publisher.
type auditService struct {
	db        *gorm.DB
	publisher events.Publisher
}

// NewAuditService creates a new AuditServicer. A nil publisher disables
// event publishing.
func NewAuditService(db *gorm.DB, publisher events.Publisher) AuditServicer {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &auditService{db: db, publisher: publisher}
}

// Log records an audit event. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *auditService) Log(ctx context.Context, userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		CreatedAt:    time.Now(),
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      changesJSON,
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
		return
	}

	event := &events.AuditEvent{
		ID:           entry.ID,
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Changes:      changesJSON,
		Timestamp:    entry.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Get().Warnw("failed to publish audit event",
			"error", err,
			"audit_id", entry.ID,
			"action", action,
		)
	}
}
