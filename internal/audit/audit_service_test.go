package audit_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sohada-a2it/A2itHRMServer/internal/audit"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAuditRepository struct {
	entries []audit.AuditLog
}

func (f *fakeAuditRepository) Create(_ context.Context, entry *audit.AuditLog) error {
	for _, existing := range f.entries {
		if existing.Action == entry.Action && existing.EntityID == entry.EntityID {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_audit_action_entity"}
		}
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepository) Find(_ context.Context, filter audit.Filter) ([]audit.AuditLog, int64, error) {
	var out []audit.AuditLog
	for _, entry := range f.entries {
		if filter.ActorID != "" && entry.ActorID != filter.ActorID {
			continue
		}
		if filter.Action != "" && entry.Action != filter.Action {
			continue
		}
		out = append(out, entry)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAuditRepository) FindByID(_ context.Context, id string) (*audit.AuditLog, error) {
	for _, entry := range f.entries {
		if entry.ID.String() == id {
			cp := entry
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuditRepository) Delete(_ context.Context, id string) error {
	for i, entry := range f.entries {
		if entry.ID.String() == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestAuditService_Record(t *testing.T) {
	ctx := context.Background()
	leaveID := uuid.NewString()
	actorID := uuid.NewString()

	entry := audit.RecordEntry{
		ActorID:    actorID,
		Action:     "leave.approved",
		EntityType: "leave",
		EntityID:   leaveID,
		Metadata:   json.RawMessage(`{"total_days":5}`),
	}

	t.Run("records an entry", func(t *testing.T) {
		repo := &fakeAuditRepository{}
		svc := audit.NewService(repo)

		require.NoError(t, svc.Record(ctx, entry))
		require.Len(t, repo.entries, 1)
		assert.Equal(t, "leave.approved", repo.entries[0].Action)
		assert.JSONEq(t, `{"total_days":5}`, repo.entries[0].Metadata)
	})

	t.Run("same action and entity is recorded once", func(t *testing.T) {
		repo := &fakeAuditRepository{}
		svc := audit.NewService(repo)

		require.NoError(t, svc.Record(ctx, entry))
		err := svc.Record(ctx, entry)
		assert.ErrorIs(t, err, audit.ErrDuplicateEntry)
		assert.Len(t, repo.entries, 1)
	})
}

func TestAuditService_ListForActor(t *testing.T) {
	ctx := context.Background()
	repo := &fakeAuditRepository{}
	svc := audit.NewService(repo)

	actorID := uuid.NewString()
	otherID := uuid.NewString()
	require.NoError(t, svc.Record(ctx, audit.RecordEntry{
		ActorID: actorID, Action: "leave.approved", EntityType: "leave", EntityID: uuid.NewString(),
	}))
	require.NoError(t, svc.Record(ctx, audit.RecordEntry{
		ActorID: otherID, Action: "leave.approved", EntityType: "leave", EntityID: uuid.NewString(),
	}))

	logs, total, err := svc.ListForActor(ctx, actorID, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, logs, 1)
	assert.Equal(t, actorID, logs[0].ActorID)

	_, _, err = svc.ListForActor(ctx, "not-a-uuid", 20, 0)
	assert.Error(t, err)
}

func TestAuditService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := &fakeAuditRepository{}
	svc := audit.NewService(repo)

	require.NoError(t, svc.Record(ctx, audit.RecordEntry{
		ActorID: uuid.NewString(), Action: "leave.approved", EntityType: "leave", EntityID: uuid.NewString(),
	}))
	id := repo.entries[0].ID.String()

	require.NoError(t, svc.Delete(ctx, id))
	assert.Empty(t, repo.entries)

	err := svc.Delete(ctx, id)
	assert.ErrorIs(t, err, audit.ErrAuditLogNotFound)
}
