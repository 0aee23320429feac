package audit

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ActorID    string    `gorm:"column:actor_id;type:uuid;index"`
	Action     string    `gorm:"column:action;type:varchar(100);not null;uniqueIndex:idx_audit_action_entity,priority:1"`
	EntityType string    `gorm:"column:entity_type;type:varchar(50);not null"`
	EntityID   string    `gorm:"column:entity_id;type:uuid;uniqueIndex:idx_audit_action_entity,priority:2"`
	Metadata   string    `gorm:"column:metadata;type:jsonb"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
