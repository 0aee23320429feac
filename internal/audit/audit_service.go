package audit

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sohada-a2it/A2itHRMServer/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrAuditLogNotFound = apperror.New(
		apperror.CodeNotFound,
		"audit log not found",
		http.StatusNotFound,
	)
	ErrInvalidAuditLogID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid audit log id",
		http.StatusBadRequest,
	)
	// ErrDuplicateEntry signals the (action, entity) pair was already recorded.
	ErrDuplicateEntry = apperror.New(
		apperror.CodeConflict,
		"audit entry already recorded",
		http.StatusConflict,
	)
)

type Service interface {
	Record(ctx context.Context, entry RecordEntry) error
	List(ctx context.Context, filter Filter) ([]AuditLogResponse, int64, error)
	ListForActor(ctx context.Context, actorID string, limit, offset int) ([]AuditLogResponse, int64, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Record(ctx context.Context, entry RecordEntry) error {
	row := &AuditLog{
		ID:         uuid.New(),
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Metadata:   string(entry.Metadata),
	}

	if err := s.repo.Create(ctx, row); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEntry
		}
		s.logger.Error("record audit entry failed",
			zap.String("action", entry.Action),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]AuditLogResponse, int64, error) {
	logs, total, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapToResponses(logs), total, nil
}

func (s *service) ListForActor(ctx context.Context, actorID string, limit, offset int) ([]AuditLogResponse, int64, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return nil, 0, ErrInvalidAuditLogID
	}
	return s.List(ctx, Filter{ActorID: actorID, Limit: limit, Offset: offset})
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidAuditLogID
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAuditLogNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func mapToResponses(logs []AuditLog) []AuditLogResponse {
	resp := make([]AuditLogResponse, 0, len(logs))
	for _, entry := range logs {
		resp = append(resp, AuditLogResponse{
			ID:         entry.ID.String(),
			ActorID:    entry.ActorID,
			Action:     entry.Action,
			EntityType: entry.EntityType,
			EntityID:   entry.EntityID,
			Metadata:   []byte(entry.Metadata),
			CreatedAt:  entry.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp
}
