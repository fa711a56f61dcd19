package reminder

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"chatbot/app/service/queue"

	"github.com/google/uuid"
	"github.com/samber/do"
)

const (
	Source   = "reminder"
	idleWait = 24 * time.Hour
)

type Notifier interface {
	Add(source, text string)
}

type Reminder struct {
	ID    string
	Text  string
	DueAt time.Time
}

// Service fires reminders in the background while the session keeps reading
// input. Fired reminders are handed to the Notifier as "Reminder! <text>".
type Service struct {
	notifier Notifier
	wake     chan struct{}

	mu      sync.Mutex
	pending []Reminder
}

func New(di *do.Injector) (*Service, error) {
	return NewService(do.MustInvoke[*queue.Service](di)), nil
}

func NewService(notifier Notifier) *Service {
	return &Service{
		notifier: notifier,
		wake:     make(chan struct{}, 1),
	}
}

func (s *Service) Schedule(delay time.Duration, text string) Reminder {
	r := Reminder{
		ID:    uuid.NewString(),
		Text:  text,
		DueAt: time.Now().Add(delay),
	}

	s.mu.Lock()
	s.pending = append(s.pending, r)
	sort.SliceStable(s.pending, func(i, j int) bool {
		return s.pending[i].DueAt.Before(s.pending[j].DueAt)
	})
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}

	slog.Info("Reminder scheduled", "id", r.ID, "due_at", r.DueAt.Format(time.TimeOnly))

	return r
}

func (s *Service) Pending() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Reminder, len(s.pending))
	copy(result, s.pending)

	return result
}

// Run delivers due reminders until ctx is done. Reminders still pending at
// that point are dropped.
func (s *Service) Run(ctx context.Context) error {
	timer := time.NewTimer(s.nextWait())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			if n := len(s.Pending()); n > 0 {
				slog.Warn("Dropping pending reminders", "count", n)
			}
			return nil
		case <-s.wake:
		case <-timer.C:
			s.fireDue()
		}

		timer.Reset(s.nextWait())
	}
}

func (s *Service) nextWait() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return idleWait
	}

	return max(time.Until(s.pending[0].DueAt), 0)
}

func (s *Service) fireDue() {
	now := time.Now()

	s.mu.Lock()
	var due []Reminder
	for len(s.pending) > 0 && !s.pending[0].DueAt.After(now) {
		due = append(due, s.pending[0])
		s.pending = s.pending[1:]
	}
	s.mu.Unlock()

	for _, r := range due {
		slog.Info("Reminder fired", "id", r.ID)
		s.notifier.Add(Source, "Reminder! "+r.Text)
	}
}
