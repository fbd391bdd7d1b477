package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackr-io/trackr/internal/application/testutil"
	"github.com/trackr-io/trackr/internal/domain/notification"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

func commentMessage(sender uint) notification.Message {
	return notification.Message{
		SenderID:   sender,
		Type:       notification.TypeTicketComment,
		Title:      "New Comment",
		Body:       "A new comment was added to CP-1",
		EntityType: notification.EntityTicket,
		EntityID:   1,
	}
}

func TestDispatch_DedupesAndSkipsSender(t *testing.T) {
	repo := testutil.NewNotificationRepository()
	d := NewDispatcher(repo, logger.NewNop())

	res := d.Dispatch(context.Background(), commentMessage(4), 1, 2, 0, 4, 2, 3, 1)

	assert.Equal(t, []uint{1, 2, 3}, res.Sent)
	assert.Empty(t, res.Failed)
	assert.Equal(t, 3, repo.Len())
	assert.Empty(t, repo.For(4))
}

func TestDispatch_FailuresAreCounted(t *testing.T) {
	repo := testutil.NewNotificationRepository()
	repo.FailFor = map[uint]error{2: errors.New("deadlock")}
	d := NewDispatcher(repo, logger.NewNop())

	res := d.Dispatch(context.Background(), commentMessage(0), 1, 2, 3)

	assert.Equal(t, []uint{1, 3}, res.Sent)
	assert.Equal(t, []uint{2}, res.Failed)
}

func TestDispatch_InvalidMessageFailsEveryRecipient(t *testing.T) {
	repo := testutil.NewNotificationRepository()
	d := NewDispatcher(repo, logger.NewNop())

	msg := commentMessage(0)
	msg.Title = ""
	res := d.Dispatch(context.Background(), msg, 1, 2)

	assert.Empty(t, res.Sent)
	assert.Equal(t, []uint{1, 2}, res.Failed)
	assert.Zero(t, repo.Len())
}

type recordingSink struct {
	mu   sync.Mutex
	wg   sync.WaitGroup
	got  []uint
	fail bool
}

func (s *recordingSink) Deliver(ctx context.Context, n *notification.Notification) error {
	defer s.wg.Done()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, n.RecipientID())
	if s.fail {
		return errors.New("smtp down")
	}
	return nil
}

func waitFor(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("email sink was not called")
	}
}

func TestDispatch_MirrorsToEmail(t *testing.T) {
	repo := testutil.NewNotificationRepository()
	sink := &recordingSink{fail: true}
	sink.wg.Add(2)
	d := NewDispatcher(repo, logger.NewNop()).WithEmail(sink)

	res := d.Dispatch(context.Background(), commentMessage(9), 5, 6)
	require.Len(t, res.Sent, 2)

	waitFor(t, &sink.wg)
	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.ElementsMatch(t, []uint{5, 6}, sink.got)
}
