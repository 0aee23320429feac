package audit

import (
	"context"

	"gorm.io/gorm"
)

type Filter struct {
	ActorID    string
	Action     string
	EntityType string
	Limit      int
	Offset     int
}

type Repository interface {
	Create(ctx context.Context, entry *AuditLog) error
	Find(ctx context.Context, filter Filter) ([]AuditLog, int64, error)
	FindByID(ctx context.Context, id string) (*AuditLog, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) Find(ctx context.Context, filter Filter) ([]AuditLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&AuditLog{})
	if filter.ActorID != "" {
		q = q.Where("actor_id = ?", filter.ActorID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		q = q.Where("entity_type = ?", filter.EntityType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var logs []AuditLog
	err := q.Order("created_at DESC").Find(&logs).Error
	return logs, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*AuditLog, error) {
	var entry AuditLog
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	return &entry, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&AuditLog{}, "id = ?", id).Error
}
