package schedule

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	FindActiveSchedule(ctx context.Context) (*OfficeSchedule, error)
	SaveSchedule(ctx context.Context, s *OfficeSchedule) error
	FindOverlappingOverride(ctx context.Context, start, end time.Time) (*OfficeScheduleOverride, error)
	FindActiveOverridesInRange(ctx context.Context, from, to time.Time) ([]OfficeScheduleOverride, error)
	SaveOverride(ctx context.Context, o *OfficeScheduleOverride) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindActiveSchedule(ctx context.Context) (*OfficeSchedule, error) {
	var s OfficeSchedule
	err := r.db.WithContext(ctx).Where("is_active = ?", true).First(&s).Error
	return &s, err
}

func (r *repository) SaveSchedule(ctx context.Context, s *OfficeSchedule) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) FindOverlappingOverride(ctx context.Context, start, end time.Time) (*OfficeScheduleOverride, error) {
	var o OfficeScheduleOverride
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("NOT (end_date < ? OR start_date > ?)", start.Format("2006-01-02"), end.Format("2006-01-02")).
		First(&o).Error
	return &o, err
}

func (r *repository) FindActiveOverridesInRange(ctx context.Context, from, to time.Time) ([]OfficeScheduleOverride, error) {
	var rows []OfficeScheduleOverride
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("start_date <= ? AND end_date >= ?", to.Format("2006-01-02"), from.Format("2006-01-02")).
		Order("start_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) SaveOverride(ctx context.Context, o *OfficeScheduleOverride) error {
	return r.db.WithContext(ctx).Save(o).Error
}
