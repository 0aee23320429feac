package holiday

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sohada-a2it/A2itHRMServer/internal/calendar"
	"github.com/sohada-a2it/A2itHRMServer/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeGovt  = "GOVT"
	TypeOther = "OTHER"
)

type Service interface {
	Create(ctx context.Context, actorID string, req CreateHolidayRequest) (HolidayResponse, error)
	GetAll(ctx context.Context) ([]HolidayResponse, error)
	Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string) error

	// ActiveInRange adapts holiday rows for the day-type resolver.
	ActiveInRange(ctx context.Context, from, to time.Time) ([]calendar.Holiday, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

var errHolidayNotFound = apperror.New(apperror.CodeNotFound, "holiday not found", http.StatusNotFound)

func (s *service) Create(ctx context.Context, actorID string, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}

	h := &Holiday{
		ID:       uuid.New(),
		Name:     req.Name,
		Date:     date,
		Type:     req.Type,
		IsActive: true,
	}
	if req.IsActive != nil {
		h.IsActive = *req.IsActive
	}
	if actor, err := uuid.Parse(actorID); err == nil {
		h.CreatedBy = actor
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return HolidayResponse{}, err
	}

	return mapToResponse(*h), nil
}

func (s *service) GetAll(ctx context.Context) ([]HolidayResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]HolidayResponse, len(rows))
	for i, h := range rows {
		resp[i] = mapToResponse(h)
	}
	return resp, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HolidayResponse{}, errHolidayNotFound
		}
		return HolidayResponse{}, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}

	h.Name = req.Name
	h.Date = date
	h.Type = req.Type
	if req.IsActive != nil {
		h.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, h); err != nil {
		return HolidayResponse{}, err
	}

	return mapToResponse(*h), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ActiveInRange(ctx context.Context, from, to time.Time) ([]calendar.Holiday, error) {
	rows, err := s.repo.FindActiveInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]calendar.Holiday, len(rows))
	for i, h := range rows {
		kind := calendar.HolidayOther
		if h.Type == TypeGovt {
			kind = calendar.HolidayGovt
		}
		out[i] = calendar.Holiday{
			Date:   calendar.Truncate(h.Date),
			Kind:   kind,
			Active: h.IsActive,
		}
	}
	return out, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, apperror.New(apperror.CodeInvalidInput, "invalid date format, expected YYYY-MM-DD", http.StatusBadRequest)
	}
	return t, nil
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:       h.ID.String(),
		Name:     h.Name,
		Date:     h.Date.Format("2006-01-02"),
		Type:     h.Type,
		IsActive: h.IsActive,
	}
}
