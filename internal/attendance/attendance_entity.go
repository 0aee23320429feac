package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent     = "PRESENT"
	StatusAbsent      = "ABSENT"
	StatusLeave       = "LEAVE"
	StatusGovtHoliday = "GOVT_HOLIDAY"
	StatusOffDay      = "OFF_DAY"
	StatusWeeklyOff   = "WEEKLY_OFF"
)

// Attendance holds at most one row per (employee_id, work_date). Ordinary
// working days are written by clock-in/clock-out; leave reconciliation writes
// LEAVE, holiday and weekly-off rows.
type Attendance struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_employee_day"`
	WorkDate   time.Time  `gorm:"type:date;not null;uniqueIndex:idx_attendance_employee_day"`
	Status     string     `gorm:"type:varchar(20);not null;default:'PRESENT'"`
	ClockIn    *time.Time `gorm:"type:timestamptz"`
	ClockOut   *time.Time `gorm:"type:timestamptz"`
	Source     string     `gorm:"type:varchar(30);not null;default:'MANUAL'"`
	Notes      *string    `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Attendance) TableName() string {
	return "attendances"
}
