package payroll

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payroll owns one pay period per employee. Amounts are stored in minor units
// (cents) to avoid floating point error.
type Payroll struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_payrolls_employee_period,unique"`

	PeriodStart time.Time `gorm:"type:date;not null;index:idx_payrolls_employee_period,unique"`
	PeriodEnd   time.Time `gorm:"type:date;not null;index:idx_payrolls_employee_period,unique"`

	BasicPay    int64 `gorm:"type:bigint;not null;default:0"`
	OvertimePay int64 `gorm:"type:bigint;not null;default:0"`
	Deductions  int64 `gorm:"type:bigint;not null;default:0"`
	NetPayable  int64 `gorm:"type:bigint;not null;default:0"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Payroll) TableName() string {
	return "payrolls"
}

// PayrollAdjustment is the ledger of leave deductions already applied to a
// payroll record. The unique (payroll_id, leave_id) pair is what makes
// re-running an approval's payroll step a no-op instead of a double deduction.
type PayrollAdjustment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PayrollID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_payroll_adjustments_leave"`
	LeaveID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_payroll_adjustments_leave"`
	Amount    int64     `gorm:"type:bigint;not null"`
	Reason    string    `gorm:"type:varchar(30);not null;default:'LEAVE_DEDUCTION'"`

	CreatedAt time.Time
}

func (PayrollAdjustment) TableName() string {
	return "payroll_adjustments"
}
