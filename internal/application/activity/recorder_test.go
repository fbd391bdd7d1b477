package activity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type mockActivityRepository struct {
	CreateFunc func(ctx context.Context, a *activity.Activity) error
	created    []*activity.Activity
}

func (m *mockActivityRepository) Create(ctx context.Context, a *activity.Activity) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, a); err != nil {
			return err
		}
	}
	a.SetID(uint(len(m.created) + 1))
	m.created = append(m.created, a)
	return nil
}

func (m *mockActivityRepository) List(ctx context.Context, f activity.Filter) ([]*activity.Activity, int64, error) {
	return m.created, int64(len(m.created)), nil
}

func TestRecorder_Record(t *testing.T) {
	repo := &mockActivityRepository{}
	r := NewRecorder(repo, logger.NewNop())

	out := r.Record(context.Background(), activity.Entry{
		ActorID:    1,
		Action:     activity.ActionCreated,
		EntityType: activity.EntityTicket,
		EntityID:   9,
	})

	require.True(t, out.OK())
	assert.Equal(t, uint(1), out.ActivityID)
	assert.Len(t, repo.created, 1)
}

func TestRecorder_RepositoryFailureIsContained(t *testing.T) {
	repo := &mockActivityRepository{
		CreateFunc: func(ctx context.Context, a *activity.Activity) error {
			return errors.New("disk full")
		},
	}
	r := NewRecorder(repo, logger.NewNop())

	out := r.Record(context.Background(), activity.Entry{
		ActorID:    1,
		Action:     activity.ActionUpdated,
		EntityType: activity.EntityProject,
		EntityID:   2,
	})

	assert.False(t, out.OK())
	assert.EqualError(t, out.Err, "disk full")
	assert.Empty(t, repo.created)
}

func TestRecorder_InvalidEntry(t *testing.T) {
	repo := &mockActivityRepository{}
	r := NewRecorder(repo, logger.NewNop())

	out := r.Record(context.Background(), activity.Entry{Action: "exploded"})
	assert.False(t, out.OK())
	assert.Empty(t, repo.created)
}
