package queue

import (
	"log/slog"
	"sync"

	"github.com/samber/do"
)

const bufferSize = 64

var _ do.Shutdownable = (*Service)(nil)

// Service carries messages that were produced outside of a turn (fired
// reminders) to the session loop that prints them.
type Service struct {
	queue chan Message

	mu     sync.Mutex
	closed bool
}

type Message struct {
	Source string
	Text   string
}

func New(_ *do.Injector) (*Service, error) {
	return NewService(), nil
}

func NewService() *Service {
	return &Service{
		queue: make(chan Message, bufferSize),
	}
}

func (s *Service) Add(source, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	select {
	case s.queue <- Message{source, text}:
	default:
		slog.Warn("message queue is full", "source", source)
	}
}

func (s *Service) Channel() <-chan Message {
	return s.queue
}

func (s *Service) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.queue)
	}

	return nil
}
