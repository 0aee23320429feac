package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sohada-a2it/A2itHRMServer/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrSessionNotFound = apperror.New(
		apperror.CodeNotFound,
		"session not found",
		http.StatusNotFound,
	)
	ErrInvalidSessionID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid session id",
		http.StatusBadRequest,
	)
)

type Service interface {
	Record(ctx context.Context, userID uuid.UUID, userAgent, ip, clientType string, ttl time.Duration) (*Session, error)
	ListForUser(ctx context.Context, userID string) ([]SessionResponse, error)
	Revoke(ctx context.Context, id string) error
	RevokeAllForUser(ctx context.Context, userID string) error
	PurgeExpired(ctx context.Context, olderThan time.Duration) (int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("session.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("session.service")
	}
	return &service{repo: repo, logger: l, now: time.Now}
}

func (s *service) Record(ctx context.Context, userID uuid.UUID, userAgent, ip, clientType string, ttl time.Duration) (*Session, error) {
	sess := &Session{
		ID:         uuid.New(),
		UserID:     userID,
		UserAgent:  userAgent,
		IPAddress:  ip,
		ClientType: clientType,
		ExpiresAt:  s.now().Add(ttl),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		s.logger.Error("record session failed", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, err
	}
	return sess, nil
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]SessionResponse, error) {
	sessions, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	resp := make([]SessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		resp = append(resp, SessionResponse{
			ID:         sess.ID.String(),
			UserID:     sess.UserID.String(),
			UserAgent:  sess.UserAgent,
			IPAddress:  sess.IPAddress,
			ClientType: sess.ClientType,
			Active:     sess.Active(now),
			ExpiresAt:  sess.ExpiresAt.Format(time.RFC3339),
			CreatedAt:  sess.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

func (s *service) Revoke(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidSessionID
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	if err := s.repo.Revoke(ctx, id, s.now()); err != nil {
		return err
	}
	s.logger.Info("session revoked", zap.String("session_id", id))
	return nil
}

func (s *service) RevokeAllForUser(ctx context.Context, userID string) error {
	if err := s.repo.RevokeAllForUser(ctx, userID, s.now()); err != nil {
		return err
	}
	s.logger.Info("all sessions revoked", zap.String("user_id", userID))
	return nil
}

func (s *service) PurgeExpired(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := s.now().Add(-olderThan)
	deleted, err := s.repo.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info("expired sessions purged", zap.Int64("deleted", deleted))
	}
	return deleted, nil
}
