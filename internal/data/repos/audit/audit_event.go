package audit

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/credfacil/promotora-backend/internal/domain"
	"github.com/credfacil/promotora-backend/internal/pkg/logger"
)

type AuditEventFilter struct {
	Module  string
	ActorID *uuid.UUID
	Limit   int
}

type AuditEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, events []*types.AuditEvent) ([]*types.AuditEvent, error)
	List(ctx context.Context, tx *gorm.DB, filter AuditEventFilter) ([]*types.AuditEvent, error)
}

type auditEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuditEventRepo(db *gorm.DB, baseLog *logger.Logger) AuditEventRepo {
	repoLog := baseLog.With("repo", "AuditEventRepo")
	return &auditEventRepo{db: db, log: repoLog}
}

func (ar *auditEventRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.AuditEvent) ([]*types.AuditEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if len(events) == 0 {
		return []*types.AuditEvent{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (ar *auditEventRepo) List(ctx context.Context, tx *gorm.DB, filter AuditEventFilter) ([]*types.AuditEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	q := transaction.WithContext(ctx).Model(&types.AuditEvent{})
	if filter.Module != "" {
		q = q.Where("module = ?", filter.Module)
	}
	if filter.ActorID != nil {
		q = q.Where("actor_id = ?", *filter.ActorID)
	}
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var results []*types.AuditEvent
	if err := q.Order("created_at DESC").Limit(limit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
