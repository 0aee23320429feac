package payroll

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, p *Payroll) error
	FindAll(ctx context.Context) ([]Payroll, error)
	FindByID(ctx context.Context, id string) (*Payroll, error)
	FindCoveringPeriod(ctx context.Context, employeeID string, spanStart, spanEnd time.Time) (*Payroll, error)
	HasOverlappingPeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time, excludeID *string) (bool, error)
	Update(ctx context.Context, p *Payroll) error
	Delete(ctx context.Context, id string) error
	ApplyAdjustment(ctx context.Context, adj *PayrollAdjustment) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Payroll, error) {
	var rows []Payroll
	err := r.db.WithContext(ctx).Order("period_start DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

// FindCoveringPeriod selects the payroll record whose period fully contains
// [spanStart, spanEnd]. Partially overlapping periods do not match.
func (r *repository) FindCoveringPeriod(ctx context.Context, employeeID string, spanStart, spanEnd time.Time) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("period_start <= ?", spanStart.Format("2006-01-02")).
		Where("period_end >= ?", spanEnd.Format("2006-01-02")).
		First(&p).Error
	return &p, err
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Where("employee_id = ?", employeeID).
		Where("NOT (period_end < ? OR period_start > ?)", periodStart, periodEnd)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Payroll{}, "id = ?", id).Error
}

// ApplyAdjustment records the adjustment and applies it to the payroll row in
// one transaction. The UPDATE adds to deductions and recomputes net_payable in
// a single statement; SET expressions read the old row, so concurrent
// approvals cannot lose each other's deduction and net_payable is never stale
// relative to deductions. A unique violation on (payroll_id, leave_id) means
// the adjustment was already applied.
func (r *repository) ApplyAdjustment(ctx context.Context, adj *PayrollAdjustment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(adj).Error; err != nil {
			return err
		}

		return tx.Exec(`
			UPDATE payrolls
			SET deductions = deductions + ?,
			    net_payable = basic_pay + overtime_pay - (deductions + ?),
			    updated_at = now()
			WHERE id = ?
		`, adj.Amount, adj.Amount, adj.PayrollID).Error
	})
}
