package schedule

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OfficeSchedule holds the standing weekly-off weekday names. At most one row
// is active at a time.
type OfficeSchedule struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WeeklyOffDays []string  `gorm:"type:jsonb;serializer:json;not null"`
	IsActive      bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (OfficeSchedule) TableName() string {
	return "office_schedules"
}

// OfficeScheduleOverride replaces the standing weekly-off set for days inside
// its inclusive [start_date, end_date] window.
type OfficeScheduleOverride struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StartDate     time.Time `gorm:"type:date;not null;index:idx_schedule_overrides_window"`
	EndDate       time.Time `gorm:"type:date;not null;index:idx_schedule_overrides_window"`
	WeeklyOffDays []string  `gorm:"type:jsonb;serializer:json;not null"`
	IsActive      bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (OfficeScheduleOverride) TableName() string {
	return "office_schedule_overrides"
}
