package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/sohada-a2it/A2itHRMServer/internal/calendar"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SourceReconciler marks rows written by leave reconciliation, as opposed to
// clock-in/clock-out or manual admin correction.
const SourceReconciler = "RECONCILER"

// Reconciler writes the attendance row for a single day of a leave span.
// Precedence, highest first: LEAVE, then holidays, then weekly off. Ordinary
// days are never written here; clock-in owns them.
type Reconciler struct {
	repo   Repository
	logger *zap.Logger
}

func NewReconciler(repo Repository, logger ...*zap.Logger) *Reconciler {
	l := zap.L().Named("attendance.reconciler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.reconciler")
	}
	return &Reconciler{repo: repo, logger: l}
}

// ReconcileDay upserts the attendance record for (employeeID, day).
//
// With leaveActive the day is forced to LEAVE unconditionally. Without it the
// day is classified from dayType, except that an existing LEAVE row is always
// kept: leave status is authoritative for payroll and a later holiday or
// weekly-off pass must not overwrite it. The result is a deterministic
// function of the inputs, so re-running a partially applied range is safe.
//
// Returns nil without error when no rule applies to the day.
func (r *Reconciler) ReconcileDay(
	ctx context.Context,
	employeeID uuid.UUID,
	day time.Time,
	leaveActive bool,
	dayType calendar.DayType,
) (*Attendance, error) {
	day = calendar.Truncate(day)

	if leaveActive {
		return r.upsert(ctx, employeeID, day, StatusLeave)
	}

	existing, err := r.repo.FindByEmployeeAndDate(ctx, employeeID.String(), day)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil && existing.Status == StatusLeave {
		// Leave wins; the day is settled.
		return existing, nil
	}

	status, ok := statusForDayType(dayType)
	if !ok {
		if err == nil {
			return existing, nil
		}
		return nil, nil
	}

	return r.upsert(ctx, employeeID, day, status)
}

func (r *Reconciler) upsert(ctx context.Context, employeeID uuid.UUID, day time.Time, status string) (*Attendance, error) {
	rec := &Attendance{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		WorkDate:   day,
		Status:     status,
		Source:     SourceReconciler,
	}

	if err := r.repo.UpsertStatus(ctx, rec); err != nil {
		return nil, err
	}

	r.logger.Debug("attendance day reconciled",
		zap.String("employee_id", employeeID.String()),
		zap.String("work_date", day.Format("2006-01-02")),
		zap.String("status", status),
	)
	return rec, nil
}

func statusForDayType(dayType calendar.DayType) (string, bool) {
	switch dayType {
	case calendar.DayGovtHoliday:
		return StatusGovtHoliday, true
	case calendar.DayOtherHoliday:
		return StatusOffDay, true
	case calendar.DayWeeklyOff:
		return StatusWeeklyOff, true
	default:
		return "", false
	}
}
