package leave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sohada-a2it/A2itHRMServer/internal/attendance"
	"github.com/sohada-a2it/A2itHRMServer/internal/calendar"
	"github.com/sohada-a2it/A2itHRMServer/internal/events"
	leaveerrors "github.com/sohada-a2it/A2itHRMServer/internal/leave/errors"
	"github.com/sohada-a2it/A2itHRMServer/internal/messaging/kafka"
	"github.com/sohada-a2it/A2itHRMServer/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// DayReconciler settles a single attendance day. leaveActive forces the day
// to LEAVE regardless of its calendar classification.
type DayReconciler interface {
	ReconcileDay(ctx context.Context, employeeID uuid.UUID, day time.Time, leaveActive bool, dayType calendar.DayType) (*attendance.Attendance, error)
}

// PayrollAdjuster books the leave deduction against the covering payroll
// period. It reports whether a deduction was applied.
type PayrollAdjuster interface {
	ApplyLeaveDeduction(ctx context.Context, leaveID, employeeID uuid.UUID, spanStart, spanEnd time.Time, payStatus string, totalDays int) (bool, error)
}

// HolidaySource and WeeklyOffSource feed the day-type resolver.
type HolidaySource interface {
	ActiveInRange(ctx context.Context, from, to time.Time) ([]calendar.Holiday, error)
}

type WeeklyOffSource interface {
	StandingWeeklyOff(ctx context.Context) ([]time.Weekday, error)
	ActiveOverridesInRange(ctx context.Context, from, to time.Time) ([]calendar.WeeklyOffOverride, error)
}

type Service interface {
	Request(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetAllByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Approve(ctx context.Context, actorID, id string, req ApproveLeaveRequest) (LeaveResponse, error)
	Reject(ctx context.Context, actorID, id, rejectionReason string) (LeaveResponse, error)
	Reconcile(ctx context.Context, id string) (LeaveResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db         *gorm.DB
	repo       Repository
	reconciler DayReconciler
	payrolls   PayrollAdjuster
	holidays   HolidaySource
	schedules  WeeklyOffSource
	outbox     kafka.OutboxRepository
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(
	db *gorm.DB,
	repo Repository,
	reconciler DayReconciler,
	payrolls PayrollAdjuster,
	holidays HolidaySource,
	schedules WeeklyOffSource,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		reconciler: reconciler,
		payrolls:   payrolls,
		holidays:   holidays,
		schedules:  schedules,
		outbox:     outbox,
		logger:     l,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Request(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("leave request received",
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, createdByUUID, startDate, endDate, err := validateCreateRequest(actorID, req)
	if err != nil {
		s.logger.Warn("leave request validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	payStatus := req.PayStatus
	if payStatus == "" {
		payStatus = "PAID"
	}

	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalDays:  calendar.InclusiveDays(startDate, endDate),
		PayStatus:  payStatus,
		Reason:     req.Reason,
		Status:     StatusPending,
		CreatedBy:  createdByUUID,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		if isUniqueViolation(err) {
			// Same employee, same exact span; racing duplicate submits land here.
			return LeaveResponse{}, leaveerrors.ErrDuplicateLeave
		}
		s.logger.Error("leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave requested",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("total_days", l.TotalDays),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetAllByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	leaves, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

// Approve flips a pending leave to APPROVED in one transaction, together with
// the outbox event, then settles attendance and payroll for the span. The
// settlement is idempotent: if it fails midway the leave stays APPROVED and
// Reconcile re-runs it without double-counting.
func (s *service) Approve(ctx context.Context, actorID, id string, req ApproveLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("approve leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	var l *Leave
	err = s.db.Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		l, err = qtx.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrLeaveNotFound
			}
			return err
		}
		if l.Status != StatusPending {
			s.logger.Warn("approve on non-pending leave",
				zap.String("leave_id", id),
				zap.String("status", l.Status),
			)
			return leaveerrors.ErrLeaveNotPending
		}

		if req.PayStatus != nil && *req.PayStatus != "" {
			l.PayStatus = *req.PayStatus
		}
		now := s.now()
		l.Status = StatusApproved
		l.ApprovedBy = &actorUUID
		l.ApprovedAt = &now
		l.RejectionReason = nil

		if err := qtx.Update(ctx, l); err != nil {
			return err
		}

		return s.enqueueApprovedEvent(ctx, tx, l)
	})
	if err != nil {
		if !errors.Is(err, leaveerrors.ErrLeaveNotFound) && !errors.Is(err, leaveerrors.ErrLeaveNotPending) {
			s.logger.Error("approve leave tx failed", zap.String("leave_id", id), zap.Error(err))
		}
		return LeaveResponse{}, err
	}

	if err := s.reconcileApproved(ctx, l); err != nil {
		s.logger.Error("approved leave reconciliation failed, re-run via reconcile",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, fmt.Errorf("reconcile approved leave: %w", err)
	}

	s.logger.Info("leave approved",
		zap.String("leave_id", id),
		zap.String("employee_id", l.EmployeeID.String()),
		zap.String("pay_status", l.PayStatus),
	)
	return mapToResponse(*l), nil
}

func (s *service) Reject(ctx context.Context, actorID, id, rejectionReason string) (LeaveResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if rejectionReason == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotPending
	}

	l.Status = StatusRejected
	l.ApprovedBy = nil
	l.ApprovedAt = nil
	l.RejectionReason = &rejectionReason

	if err := s.repo.Update(ctx, l); err != nil {
		s.logger.Error("reject leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave rejected", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

// Reconcile re-runs attendance and payroll settlement for an already
// approved leave. Safe to call any number of times.
func (s *service) Reconcile(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusApproved {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotApproved
	}

	if err := s.reconcileApproved(ctx, l); err != nil {
		return LeaveResponse{}, fmt.Errorf("reconcile leave: %w", err)
	}
	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		return err
	}
	if l.Status != StatusPending {
		return leaveerrors.ErrLeaveNotPending
	}
	return s.repo.Delete(ctx, id)
}

// reconcileApproved settles the approved span in two passes. The leave pass
// runs first so every day in the span is marked LEAVE before the calendar
// pass fills holidays and weekly-offs around other records; the calendar
// pass never downgrades a LEAVE day. The payroll deduction sits between the
// passes and is guarded by the per-leave adjustment ledger.
func (s *service) reconcileApproved(ctx context.Context, l *Leave) error {
	days := calendar.DaysInRange(l.StartDate, l.EndDate)

	for _, day := range days {
		if _, err := s.reconciler.ReconcileDay(ctx, l.EmployeeID, day, true, calendar.DayOrdinary); err != nil {
			return fmt.Errorf("mark leave day %s: %w", day.Format("2006-01-02"), err)
		}
	}

	applied, err := s.payrolls.ApplyLeaveDeduction(ctx, l.ID, l.EmployeeID, l.StartDate, l.EndDate, l.PayStatus, l.TotalDays)
	if err != nil {
		return fmt.Errorf("apply payroll deduction: %w", err)
	}
	if applied {
		s.logger.Info("leave deduction applied",
			zap.String("leave_id", l.ID.String()),
			zap.String("pay_status", l.PayStatus),
			zap.Int("total_days", l.TotalDays),
		)
	}

	holidays, err := s.holidays.ActiveInRange(ctx, l.StartDate, l.EndDate)
	if err != nil {
		return fmt.Errorf("load holidays: %w", err)
	}
	weeklyOff, err := s.schedules.StandingWeeklyOff(ctx)
	if err != nil {
		return fmt.Errorf("load weekly off: %w", err)
	}
	overrides, err := s.schedules.ActiveOverridesInRange(ctx, l.StartDate, l.EndDate)
	if err != nil {
		return fmt.Errorf("load weekly off overrides: %w", err)
	}

	for _, day := range days {
		dayType := calendar.ResolveDayType(day, holidays, overrides, weeklyOff)
		if _, err := s.reconciler.ReconcileDay(ctx, l.EmployeeID, day, false, dayType); err != nil {
			return fmt.Errorf("settle day %s: %w", day.Format("2006-01-02"), err)
		}
	}

	return nil
}

func (s *service) enqueueApprovedEvent(ctx context.Context, tx *gorm.DB, l *Leave) error {
	event := events.LeaveApprovedEvent{
		EventType:  "leave.approved",
		LeaveID:    l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		TotalDays:  l.TotalDays,
		PayStatus:  l.PayStatus,
		OccurredAt: s.now(),
	}
	if l.ApprovedBy != nil {
		event.ApprovedBy = l.ApprovedBy.String()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveApprovedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func validateCreateRequest(actorID string, req CreateLeaveRequest) (uuid.UUID, uuid.UUID, time.Time, time.Time, error) {
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidEmployeeID
	}
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidActorID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return employeeUUID, createdByUUID, startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t.UTC(), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		TotalDays:  l.TotalDays,
		PayStatus:  l.PayStatus,
		Reason:     l.Reason,
		Status:     l.Status,
		CreatedBy:  l.CreatedBy.String(),
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = l.RejectionReason
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
