package payroll_test

import (
	"context"
	"testing"
	"time"

	"github.com/sohada-a2it/A2itHRMServer/internal/payroll"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePayrollRepository struct {
	records     map[string]*payroll.Payroll
	adjustments map[string]*payroll.PayrollAdjustment // keyed payroll_id|leave_id
}

func newFakePayrollRepository() *fakePayrollRepository {
	return &fakePayrollRepository{
		records:     make(map[string]*payroll.Payroll),
		adjustments: make(map[string]*payroll.PayrollAdjustment),
	}
}

func (f *fakePayrollRepository) Create(ctx context.Context, p *payroll.Payroll) error {
	f.records[p.ID.String()] = p
	return nil
}

func (f *fakePayrollRepository) FindAll(ctx context.Context) ([]payroll.Payroll, error) {
	var out []payroll.Payroll
	for _, p := range f.records {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePayrollRepository) FindByID(ctx context.Context, id string) (*payroll.Payroll, error) {
	if p, ok := f.records[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) FindCoveringPeriod(ctx context.Context, employeeID string, spanStart, spanEnd time.Time) (*payroll.Payroll, error) {
	for _, p := range f.records {
		if p.EmployeeID.String() == employeeID &&
			!p.PeriodStart.After(spanStart) && !p.PeriodEnd.Before(spanEnd) {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) HasOverlappingPeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time, excludeID *string) (bool, error) {
	return false, nil
}

func (f *fakePayrollRepository) Update(ctx context.Context, p *payroll.Payroll) error {
	f.records[p.ID.String()] = p
	return nil
}

func (f *fakePayrollRepository) Delete(ctx context.Context, id string) error {
	delete(f.records, id)
	return nil
}

func (f *fakePayrollRepository) ApplyAdjustment(ctx context.Context, adj *payroll.PayrollAdjustment) error {
	key := adj.PayrollID.String() + "|" + adj.LeaveID.String()
	if _, ok := f.adjustments[key]; ok {
		return &pgconn.PgError{Code: "23505"}
	}
	f.adjustments[key] = adj

	p := f.records[adj.PayrollID.String()]
	p.Deductions += adj.Amount
	p.NetPayable = p.BasicPay + p.OvertimePay - p.Deductions
	return nil
}

func seedPayroll(repo *fakePayrollRepository, employeeID uuid.UUID, basicPay int64) *payroll.Payroll {
	p := &payroll.Payroll{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		PeriodStart: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
		BasicPay:    basicPay,
		NetPayable:  basicPay,
	}
	repo.records[p.ID.String()] = p
	return p
}

func span(d1, d2 int) (time.Time, time.Time) {
	return time.Date(2024, 5, d1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, d2, 0, 0, 0, 0, time.UTC)
}

func TestApplyLeaveDeduction(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("unpaid leave deducts daily rate times days", func(t *testing.T) {
		repo := newFakePayrollRepository()
		p := seedPayroll(repo, employeeID, 3000)
		svc := payroll.NewService(repo)

		start, end := span(6, 10)
		applied, err := svc.ApplyLeaveDeduction(ctx, uuid.New(), employeeID, start, end, payroll.PayStatusUnpaid, 5)
		assert.NoError(t, err)
		assert.True(t, applied)

		// 3000 / 30 * 5
		assert.EqualValues(t, 500, p.Deductions)
		assert.EqualValues(t, 2500, p.NetPayable)
	})

	t.Run("half paid leave deducts half", func(t *testing.T) {
		repo := newFakePayrollRepository()
		p := seedPayroll(repo, employeeID, 3000)
		svc := payroll.NewService(repo)

		start, end := span(6, 10)
		applied, err := svc.ApplyLeaveDeduction(ctx, uuid.New(), employeeID, start, end, payroll.PayStatusHalfPaid, 5)
		assert.NoError(t, err)
		assert.True(t, applied)

		assert.EqualValues(t, 250, p.Deductions)
		assert.EqualValues(t, 2750, p.NetPayable)
	})

	t.Run("paid leave touches nothing", func(t *testing.T) {
		repo := newFakePayrollRepository()
		p := seedPayroll(repo, employeeID, 3000)
		svc := payroll.NewService(repo)

		start, end := span(6, 10)
		applied, err := svc.ApplyLeaveDeduction(ctx, uuid.New(), employeeID, start, end, payroll.PayStatusPaid, 5)
		assert.NoError(t, err)
		assert.False(t, applied)
		assert.Zero(t, p.Deductions)
		assert.Empty(t, repo.adjustments)
	})

	t.Run("no covering period is a silent no-op", func(t *testing.T) {
		repo := newFakePayrollRepository()
		p := seedPayroll(repo, employeeID, 3000)
		svc := payroll.NewService(repo)

		// Leave crosses the period boundary; full containment fails.
		start := time.Date(2024, 5, 28, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
		applied, err := svc.ApplyLeaveDeduction(ctx, uuid.New(), employeeID, start, end, payroll.PayStatusUnpaid, 7)
		assert.NoError(t, err)
		assert.False(t, applied)
		assert.Zero(t, p.Deductions)
	})

	t.Run("same leave deducts only once", func(t *testing.T) {
		repo := newFakePayrollRepository()
		p := seedPayroll(repo, employeeID, 3000)
		svc := payroll.NewService(repo)

		leaveID := uuid.New()
		start, end := span(6, 10)

		applied, err := svc.ApplyLeaveDeduction(ctx, leaveID, employeeID, start, end, payroll.PayStatusUnpaid, 5)
		assert.NoError(t, err)
		assert.True(t, applied)

		applied, err = svc.ApplyLeaveDeduction(ctx, leaveID, employeeID, start, end, payroll.PayStatusUnpaid, 5)
		assert.NoError(t, err)
		assert.False(t, applied)

		assert.EqualValues(t, 500, p.Deductions)
		assert.EqualValues(t, 2500, p.NetPayable)
	})

	t.Run("two different leaves accumulate", func(t *testing.T) {
		repo := newFakePayrollRepository()
		p := seedPayroll(repo, employeeID, 3000)
		svc := payroll.NewService(repo)

		s1, e1 := span(6, 10)
		_, err := svc.ApplyLeaveDeduction(ctx, uuid.New(), employeeID, s1, e1, payroll.PayStatusUnpaid, 5)
		assert.NoError(t, err)

		s2, e2 := span(20, 21)
		_, err = svc.ApplyLeaveDeduction(ctx, uuid.New(), employeeID, s2, e2, payroll.PayStatusUnpaid, 2)
		assert.NoError(t, err)

		assert.EqualValues(t, 700, p.Deductions)
		assert.EqualValues(t, 2300, p.NetPayable)
	})
}
