package payroll

import (
	"context"
	"errors"
	"time"

	payrollerrors "github.com/sohada-a2it/A2itHRMServer/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	PayStatusPaid     = "PAID"
	PayStatusUnpaid   = "UNPAID"
	PayStatusHalfPaid = "HALF_PAID"
)

// daysPerMonth is the fixed daily-rate convention: basic pay divided by 30
// regardless of the calendar month length.
const daysPerMonth = 30

type Service interface {
	Create(ctx context.Context, actorID string, req CreatePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context) ([]PayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	Update(ctx context.Context, id string, req UpdatePayrollRequest) (PayrollResponse, error)
	Delete(ctx context.Context, id string) error

	// ApplyLeaveDeduction deducts an approved leave from the payroll period
	// that fully contains the leave span. It reports whether a deduction was
	// applied; a missing covering period or an already-applied leave is a
	// silent no-op.
	ApplyLeaveDeduction(ctx context.Context, leaveID, employeeID uuid.UUID, spanStart, spanEnd time.Time, payStatus string, totalDays int) (bool, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreatePayrollRequest) (PayrollResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	createdBy, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}

	periodStart, periodEnd, err := parsePeriod(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return PayrollResponse{}, err
	}
	if req.BasicPay < 0 || req.OvertimePay < 0 {
		return PayrollResponse{}, payrollerrors.ErrNegativeAmount
	}

	overlap, err := s.repo.HasOverlappingPeriod(ctx, req.EmployeeID, periodStart, periodEnd, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	if overlap {
		return PayrollResponse{}, payrollerrors.ErrPeriodOverlap
	}

	p := &Payroll{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		BasicPay:    req.BasicPay,
		OvertimePay: req.OvertimePay,
		NetPayable:  req.BasicPay + req.OvertimePay,
		CreatedBy:   createdBy,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll created",
		zap.String("payroll_id", p.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]PayrollResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]PayrollResponse, len(rows))
	for i, p := range rows {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePayrollRequest) (PayrollResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}

	periodStart, periodEnd, err := parsePeriod(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return PayrollResponse{}, err
	}
	if req.BasicPay < 0 || req.OvertimePay < 0 {
		return PayrollResponse{}, payrollerrors.ErrNegativeAmount
	}

	overlap, err := s.repo.HasOverlappingPeriod(ctx, p.EmployeeID.String(), periodStart, periodEnd, &id)
	if err != nil {
		return PayrollResponse{}, err
	}
	if overlap {
		return PayrollResponse{}, payrollerrors.ErrPeriodOverlap
	}

	p.PeriodStart = periodStart
	p.PeriodEnd = periodEnd
	p.BasicPay = req.BasicPay
	p.OvertimePay = req.OvertimePay
	p.NetPayable = p.BasicPay + p.OvertimePay - p.Deductions

	if err := s.repo.Update(ctx, p); err != nil {
		return PayrollResponse{}, err
	}

	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ApplyLeaveDeduction(
	ctx context.Context,
	leaveID, employeeID uuid.UUID,
	spanStart, spanEnd time.Time,
	payStatus string,
	totalDays int,
) (bool, error) {
	if payStatus == PayStatusPaid {
		return false, nil
	}

	p, err := s.repo.FindCoveringPeriod(ctx, employeeID.String(), spanStart, spanEnd)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A leave crossing pay periods, or a period not created yet,
			// matches nothing. Approval proceeds without a deduction.
			s.logger.Warn("no payroll period fully contains leave span, skipping deduction",
				zap.String("leave_id", leaveID.String()),
				zap.String("employee_id", employeeID.String()),
				zap.String("span_start", spanStart.Format("2006-01-02")),
				zap.String("span_end", spanEnd.Format("2006-01-02")),
			)
			return false, nil
		}
		return false, err
	}

	amount := p.BasicPay * int64(totalDays) / daysPerMonth
	if payStatus == PayStatusHalfPaid {
		amount /= 2
	}

	adj := &PayrollAdjustment{
		ID:        uuid.New(),
		PayrollID: p.ID,
		LeaveID:   leaveID,
		Amount:    amount,
	}

	if err := s.repo.ApplyAdjustment(ctx, adj); err != nil {
		if isUniqueViolation(err) {
			// This leave already deducted from this period on a previous run.
			s.logger.Debug("leave deduction already applied",
				zap.String("leave_id", leaveID.String()),
				zap.String("payroll_id", p.ID.String()),
			)
			return false, nil
		}
		return false, err
	}

	s.logger.Info("leave deduction applied",
		zap.String("leave_id", leaveID.String()),
		zap.String("payroll_id", p.ID.String()),
		zap.Int64("amount", amount),
		zap.String("pay_status", payStatus),
	)
	return true, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func parsePeriod(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidPeriod
	}
	return start, end, nil
}

func mapToResponse(p Payroll) PayrollResponse {
	return PayrollResponse{
		ID:          p.ID.String(),
		EmployeeID:  p.EmployeeID.String(),
		PeriodStart: p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   p.PeriodEnd.Format("2006-01-02"),
		BasicPay:    p.BasicPay,
		OvertimePay: p.OvertimePay,
		Deductions:  p.Deductions,
		NetPayable:  p.NetPayable,
		CreatedBy:   p.CreatedBy.String(),
	}
}
