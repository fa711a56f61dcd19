package reminder

import (
	"context"
	"testing"
	"time"

	"chatbot/app/service/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func run(t *testing.T, s *Service) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
}

func receive(t *testing.T, q *queue.Service) queue.Message {
	t.Helper()

	select {
	case msg := <-q.Channel():
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("reminder was not delivered")
		return queue.Message{}
	}
}

func TestReminderFires(t *testing.T) {
	q := queue.NewService()
	s := NewService(q)
	run(t, s)

	r := s.Schedule(10*time.Millisecond, "drink water")
	assert.NotEmpty(t, r.ID)

	msg := receive(t, q)
	assert.Equal(t, Source, msg.Source)
	assert.Equal(t, "Reminder! drink water", msg.Text)
	assert.Empty(t, s.Pending())
}

func TestRemindersFireInDueOrder(t *testing.T) {
	q := queue.NewService()
	s := NewService(q)
	run(t, s)

	s.Schedule(80*time.Millisecond, "second")
	s.Schedule(10*time.Millisecond, "first")

	assert.Equal(t, "Reminder! first", receive(t, q).Text)
	assert.Equal(t, "Reminder! second", receive(t, q).Text)
}

func TestScheduleBeforeRun(t *testing.T) {
	q := queue.NewService()
	s := NewService(q)

	s.Schedule(0, "now")
	require.Len(t, s.Pending(), 1)

	run(t, s)
	assert.Equal(t, "Reminder! now", receive(t, q).Text)
}

func TestStopDropsPending(t *testing.T) {
	q := queue.NewService()
	s := NewService(q)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	s.Schedule(time.Hour, "later")
	cancel()
	require.NoError(t, <-done)

	assert.Len(t, q.Channel(), 0)
}
