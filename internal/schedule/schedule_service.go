package schedule

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sohada-a2it/A2itHRMServer/internal/calendar"
	"github.com/sohada-a2it/A2itHRMServer/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	GetWeeklyOff(ctx context.Context) (WeeklyOffResponse, error)
	UpdateWeeklyOff(ctx context.Context, req UpdateWeeklyOffRequest) (WeeklyOffResponse, error)
	UpsertOverride(ctx context.Context, req UpsertOverrideRequest) (OverrideResponse, error)

	// StandingWeeklyOff and ActiveOverridesInRange adapt schedule rows for the
	// day-type resolver.
	StandingWeeklyOff(ctx context.Context) ([]time.Weekday, error)
	ActiveOverridesInRange(ctx context.Context, from, to time.Time) ([]calendar.WeeklyOffOverride, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("schedule.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schedule.service")
	}
	return &service{repo: repo, logger: l}
}

var errInvalidWeekday = apperror.New(
	apperror.CodeInvalidInput,
	"weekly_off_days must contain valid weekday names",
	http.StatusBadRequest,
)

func (s *service) GetWeeklyOff(ctx context.Context) (WeeklyOffResponse, error) {
	sched, err := s.repo.FindActiveSchedule(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WeeklyOffResponse{
				WeeklyOffDays: weekdayNames(calendar.DefaultWeeklyOff),
				IsDefault:     true,
			}, nil
		}
		return WeeklyOffResponse{}, err
	}

	return WeeklyOffResponse{WeeklyOffDays: sched.WeeklyOffDays}, nil
}

func (s *service) UpdateWeeklyOff(ctx context.Context, req UpdateWeeklyOffRequest) (WeeklyOffResponse, error) {
	if _, err := calendar.ParseWeekdays(req.WeeklyOffDays); err != nil {
		return WeeklyOffResponse{}, errInvalidWeekday
	}

	sched, err := s.repo.FindActiveSchedule(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return WeeklyOffResponse{}, err
		}
		sched = &OfficeSchedule{ID: uuid.New(), IsActive: true}
	}

	sched.WeeklyOffDays = req.WeeklyOffDays
	if err := s.repo.SaveSchedule(ctx, sched); err != nil {
		return WeeklyOffResponse{}, err
	}

	s.logger.Info("weekly off updated", zap.Strings("days", req.WeeklyOffDays))
	return WeeklyOffResponse{WeeklyOffDays: sched.WeeklyOffDays}, nil
}

func (s *service) UpsertOverride(ctx context.Context, req UpsertOverrideRequest) (OverrideResponse, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return OverrideResponse{}, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return OverrideResponse{}, err
	}
	if start.After(end) {
		return OverrideResponse{}, apperror.New(
			apperror.CodeInvalidInput,
			"start_date must be before or equal end_date",
			http.StatusBadRequest,
		)
	}
	if _, err := calendar.ParseWeekdays(req.WeeklyOffDays); err != nil {
		return OverrideResponse{}, errInvalidWeekday
	}

	// An override overlapping the requested window is updated in place rather
	// than stacked, so at most one override governs a day.
	o, err := s.repo.FindOverlappingOverride(ctx, start, end)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return OverrideResponse{}, err
		}
		o = &OfficeScheduleOverride{ID: uuid.New()}
	}

	o.StartDate = start
	o.EndDate = end
	o.WeeklyOffDays = req.WeeklyOffDays
	o.IsActive = true
	if req.IsActive != nil {
		o.IsActive = *req.IsActive
	}

	if err := s.repo.SaveOverride(ctx, o); err != nil {
		return OverrideResponse{}, err
	}

	s.logger.Info("weekly off override saved",
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.Strings("days", req.WeeklyOffDays),
	)

	return OverrideResponse{
		ID:            o.ID.String(),
		StartDate:     o.StartDate.Format("2006-01-02"),
		EndDate:       o.EndDate.Format("2006-01-02"),
		WeeklyOffDays: o.WeeklyOffDays,
		IsActive:      o.IsActive,
	}, nil
}

func (s *service) StandingWeeklyOff(ctx context.Context) ([]time.Weekday, error) {
	sched, err := s.repo.FindActiveSchedule(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return calendar.DefaultWeeklyOff, nil
		}
		return nil, err
	}

	days, err := calendar.ParseWeekdays(sched.WeeklyOffDays)
	if err != nil {
		// A schedule row with bad names should not break approvals.
		s.logger.Warn("stored weekly off contains invalid weekday, using default", zap.Error(err))
		return calendar.DefaultWeeklyOff, nil
	}
	return days, nil
}

func (s *service) ActiveOverridesInRange(ctx context.Context, from, to time.Time) ([]calendar.WeeklyOffOverride, error) {
	rows, err := s.repo.FindActiveOverridesInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]calendar.WeeklyOffOverride, 0, len(rows))
	for _, o := range rows {
		days, err := calendar.ParseWeekdays(o.WeeklyOffDays)
		if err != nil {
			s.logger.Warn("override contains invalid weekday, skipping",
				zap.String("override_id", o.ID.String()),
				zap.Error(err),
			)
			continue
		}
		out = append(out, calendar.WeeklyOffOverride{
			StartDate: calendar.Truncate(o.StartDate),
			EndDate:   calendar.Truncate(o.EndDate),
			Days:      days,
			Active:    o.IsActive,
		})
	}
	return out, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, apperror.New(
			apperror.CodeInvalidInput,
			"invalid date format, expected YYYY-MM-DD",
			http.StatusBadRequest,
		)
	}
	return t, nil
}

func weekdayNames(days []time.Weekday) []string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return names
}
