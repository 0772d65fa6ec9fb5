package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditEvent is an append-only trail row recorded after a mutating business
// transaction commits. Writing it never rolls the business transaction back.
type AuditEvent struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ActorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"actor_id"`
	Module   string    `gorm:"not null;index" json:"module"`
	Action   string    `gorm:"not null;index" json:"action"`
	EntityID uuid.UUID `gorm:"type:uuid;not null;index" json:"entity_id"`

	Detail datatypes.JSON `gorm:"type:jsonb" json:"detail,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (AuditEvent) TableName() string { return "audit_event" }
