package attendance

import (
	"context"
	"errors"
	"time"

	attendanceerrors "github.com/sohada-a2it/A2itHRMServer/internal/attendance/errors"
	"github.com/sohada-a2it/A2itHRMServer/internal/calendar"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	ClockIn(ctx context.Context, employeeID string) (AttendanceResponse, error)
	ClockOut(ctx context.Context, employeeID string) (AttendanceResponse, error)
	AdminCorrect(ctx context.Context, req AdminCorrectRequest) (AttendanceResponse, error)
	Summary(ctx context.Context, req SummaryFilterRequest) (SummaryResponse, error)
	ListForDate(ctx context.Context, date string) ([]AttendanceResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{repo: repo, logger: l, now: time.Now}
}

func (s *service) ClockIn(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	now := s.now().UTC()
	today := calendar.Truncate(now)

	existing, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}

	if err == nil {
		if existing.ClockIn != nil {
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
		}
		existing.ClockIn = &now
		existing.Status = StatusPresent
		existing.Source = "CLOCK"
		if err := s.repo.Update(ctx, existing); err != nil {
			return AttendanceResponse{}, err
		}
		return mapToResponse(*existing), nil
	}

	rec := &Attendance{
		ID:         uuid.New(),
		EmployeeID: empUUID,
		WorkDate:   today,
		Status:     StatusPresent,
		ClockIn:    &now,
		Source:     "CLOCK",
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("clock in", zap.String("employee_id", employeeID))
	return mapToResponse(*rec), nil
}

func (s *service) ClockOut(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	now := s.now().UTC()
	today := calendar.Truncate(now)

	existing, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNotClockedIn
		}
		return AttendanceResponse{}, err
	}
	if existing.ClockIn == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNotClockedIn
	}

	existing.ClockOut = &now
	if err := s.repo.Update(ctx, existing); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("clock out", zap.String("employee_id", employeeID))
	return mapToResponse(*existing), nil
}

func (s *service) AdminCorrect(ctx context.Context, req AdminCorrectRequest) (AttendanceResponse, error) {
	empUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDateFormat
	}

	rec := &Attendance{
		ID:         uuid.New(),
		EmployeeID: empUUID,
		WorkDate:   calendar.Truncate(date),
		Status:     req.Status,
		Source:     "ADMIN",
		Notes:      req.Notes,
	}
	if err := s.repo.UpsertStatus(ctx, rec); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("attendance corrected",
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.String("status", req.Status),
	)
	return mapToResponse(*rec), nil
}

func (s *service) Summary(ctx context.Context, req SummaryFilterRequest) (SummaryResponse, error) {
	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		return SummaryResponse{}, attendanceerrors.ErrInvalidDateFormat
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		return SummaryResponse{}, attendanceerrors.ErrInvalidDateFormat
	}
	if from.After(to) {
		return SummaryResponse{}, attendanceerrors.ErrInvalidDateRange
	}

	counts := make(map[string]int64)
	for _, status := range []string{
		StatusPresent, StatusAbsent, StatusLeave,
		StatusGovtHoliday, StatusOffDay, StatusWeeklyOff,
	} {
		n, err := s.repo.CountByStatusInRange(ctx, req.EmployeeID, status, from, to)
		if err != nil {
			return SummaryResponse{}, err
		}
		counts[status] = n
	}

	return SummaryResponse{
		EmployeeID: req.EmployeeID,
		From:       req.From,
		To:         req.To,
		Counts:     counts,
	}, nil
}

func (s *service) ListForDate(ctx context.Context, date string) ([]AttendanceResponse, error) {
	day := calendar.Truncate(s.now().UTC())
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDateFormat
		}
		day = calendar.Truncate(parsed)
	}

	rows, err := s.repo.FindAllByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	resp := make([]AttendanceResponse, len(rows))
	for i, a := range rows {
		resp[i] = mapToResponse(a)
	}
	return resp, nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         a.ID.String(),
		EmployeeID: a.EmployeeID.String(),
		WorkDate:   a.WorkDate.Format("2006-01-02"),
		Status:     a.Status,
		Source:     a.Source,
		Notes:      a.Notes,
	}
	if a.ClockIn != nil {
		v := a.ClockIn.Format(time.RFC3339)
		resp.ClockIn = &v
	}
	if a.ClockOut != nil {
		v := a.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	return resp
}
