package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/sohada-a2it/A2itHRMServer/internal/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSessionStore struct {
	sessions map[string]*session.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*session.Session)}
}

func (f *fakeSessionStore) Create(_ context.Context, s *session.Session) error {
	cp := *s
	cp.CreatedAt = time.Now()
	f.sessions[s.ID.String()] = &cp
	return nil
}

func (f *fakeSessionStore) FindByID(_ context.Context, id string) (*session.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionStore) FindByUser(_ context.Context, userID string) ([]session.Session, error) {
	var out []session.Session
	for _, s := range f.sessions {
		if s.UserID.String() == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionStore) Revoke(_ context.Context, id string, at time.Time) error {
	if s, ok := f.sessions[id]; ok && s.RevokedAt == nil {
		s.RevokedAt = &at
	}
	return nil
}

func (f *fakeSessionStore) RevokeAllForUser(_ context.Context, userID string, at time.Time) error {
	for _, s := range f.sessions {
		if s.UserID.String() == userID && s.RevokedAt == nil {
			s.RevokedAt = &at
		}
	}
	return nil
}

func (f *fakeSessionStore) DeleteExpiredBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	for id, s := range f.sessions {
		if s.ExpiresAt.Before(cutoff) {
			delete(f.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

func TestSessionService_RecordAndList(t *testing.T) {
	ctx := context.Background()
	store := newFakeSessionStore()
	svc := session.NewService(store)
	userID := uuid.New()

	sess, err := svc.Record(ctx, userID, "Mozilla/5.0", "10.0.0.9", "web", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, userID, sess.UserID)
	assert.True(t, sess.ExpiresAt.After(time.Now()))

	listed, err := svc.ListForUser(ctx, userID.String())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, sess.ID.String(), listed[0].ID)
	assert.Equal(t, "web", listed[0].ClientType)
	assert.True(t, listed[0].Active)
}

func TestSessionService_Revoke(t *testing.T) {
	ctx := context.Background()
	store := newFakeSessionStore()
	svc := session.NewService(store)
	userID := uuid.New()

	sess, err := svc.Record(ctx, userID, "", "", "api", time.Hour)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, sess.ID.String()))

	listed, err := svc.ListForUser(ctx, userID.String())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.False(t, listed[0].Active)

	assert.ErrorIs(t, svc.Revoke(ctx, uuid.NewString()), session.ErrSessionNotFound)
	assert.ErrorIs(t, svc.Revoke(ctx, "not-a-uuid"), session.ErrInvalidSessionID)
}

func TestSessionService_RevokeAllForUser(t *testing.T) {
	ctx := context.Background()
	store := newFakeSessionStore()
	svc := session.NewService(store)
	userID := uuid.New()
	otherID := uuid.New()

	_, err := svc.Record(ctx, userID, "", "", "web", time.Hour)
	require.NoError(t, err)
	_, err = svc.Record(ctx, userID, "", "", "mobile", time.Hour)
	require.NoError(t, err)
	other, err := svc.Record(ctx, otherID, "", "", "web", time.Hour)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAllForUser(ctx, userID.String()))

	listed, err := svc.ListForUser(ctx, userID.String())
	require.NoError(t, err)
	for _, s := range listed {
		assert.False(t, s.Active)
	}

	assert.Nil(t, store.sessions[other.ID.String()].RevokedAt)
}

func TestSessionService_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	store := newFakeSessionStore()
	svc := session.NewService(store)
	userID := uuid.New()

	stale, err := svc.Record(ctx, userID, "", "", "web", -48*time.Hour)
	require.NoError(t, err)
	fresh, err := svc.Record(ctx, userID, "", "", "web", time.Hour)
	require.NoError(t, err)

	deleted, err := svc.PurgeExpired(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, ok := store.sessions[stale.ID.String()]
	assert.False(t, ok)
	_, ok = store.sessions[fresh.ID.String()]
	assert.True(t, ok)
}
