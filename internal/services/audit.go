package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/credfacil/promotora-backend/internal/data/repos"
	types "github.com/credfacil/promotora-backend/internal/domain"
	"github.com/credfacil/promotora-backend/internal/pkg/logger"
)

const (
	AuditModuleLoans       = "loans"
	AuditModuleCommissions = "commissions"
	AuditModuleFinancial   = "financial"
)

// AuditService is the fire-and-forget trail sink. Record is called after the
// business transaction commits; a failed audit write is logged and dropped,
// never surfaced to the caller.
type AuditService interface {
	Record(ctx context.Context, actorID uuid.UUID, module, action string, entityID uuid.UUID, detail map[string]any)
	List(ctx context.Context, filter repos.AuditEventFilter) ([]*types.AuditEvent, error)
}

type auditService struct {
	db     *gorm.DB
	log    *logger.Logger
	events repos.AuditEventRepo
}

func NewAuditService(db *gorm.DB, baseLog *logger.Logger, events repos.AuditEventRepo) AuditService {
	return &auditService{
		db:     db,
		log:    baseLog.With("service", "AuditService"),
		events: events,
	}
}

func (as *auditService) Record(ctx context.Context, actorID uuid.UUID, module, action string, entityID uuid.UUID, detail map[string]any) {
	var payload datatypes.JSON
	if len(detail) > 0 {
		raw, err := json.Marshal(detail)
		if err != nil {
			as.log.Warn("audit detail marshal failed", "module", module, "action", action, "error", err)
		} else {
			payload = datatypes.JSON(raw)
		}
	}

	row := &types.AuditEvent{
		ID:        uuid.New(),
		ActorID:   actorID,
		Module:    module,
		Action:    action,
		EntityID:  entityID,
		Detail:    payload,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := as.events.Create(ctx, nil, []*types.AuditEvent{row}); err != nil {
		as.log.Warn("audit event write failed",
			"module", module,
			"action", action,
			"entity_id", entityID.String(),
			"error", err,
		)
	}
}

func (as *auditService) List(ctx context.Context, filter repos.AuditEventFilter) ([]*types.AuditEvent, error) {
	return as.events.List(ctx, nil, filter)
}
