package memory

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"chatbot/app/config"

	"github.com/samber/do"
)

var _ do.Shutdownable = (*Service)(nil)

// Service holds the user's identity and taught responses in memory and writes
// them through to the Store after every mutation.
type Service struct {
	store Store

	mu        sync.RWMutex
	name      string
	responses *Responses
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	store, err := OpenStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	s, err := NewService(store)
	if err != nil {
		store.Close()
		return nil, err
	}

	return s, nil
}

func NewService(store Store) (*Service, error) {
	name, err := store.LoadIdentity()
	if err != nil {
		return nil, fmt.Errorf("failed to load identity: %w", err)
	}

	responses, err := store.LoadResponses()
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}

	slog.Debug("Memory loaded",
		"has_name", name != "",
		"responses_count", responses.Len(),
	)

	return &Service{
		store:     store,
		name:      name,
		responses: responses,
	}, nil
}

func (s *Service) Name() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.name, s.name != ""
}

func (s *Service) SetName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SaveIdentity(name); err != nil {
		return fmt.Errorf("store.SaveIdentity: %w", err)
	}
	s.name = name

	slog.Info("Name saved", "name", name)

	return nil
}

func (s *Service) ResetName() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.name = ""
	if err := s.store.DeleteIdentity(); err != nil {
		return fmt.Errorf("store.DeleteIdentity: %w", err)
	}

	slog.Info("Name reset")

	return nil
}

// Answer looks a question up by exact equality.
func (s *Service) Answer(question string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.responses.Get(question)
}

// Teach inserts or overwrites a response. The in-memory state is left untouched
// when the document cannot be written.
func (s *Service) Teach(question, answer string) error {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)

	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneResponses(s.responses)
	next.Set(question, answer)

	if err := s.store.SaveResponses(next); err != nil {
		return fmt.Errorf("store.SaveResponses: %w", err)
	}
	s.responses = next

	slog.Info("Response taught", "question", question)

	return nil
}

// Forget removes a response, returning ErrNotFound without touching the store
// when the question is unknown.
func (s *Service) Forget(question string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.responses.Get(question); !ok {
		return ErrNotFound
	}

	next := cloneResponses(s.responses)
	next.Delete(question)

	if err := s.store.SaveResponses(next); err != nil {
		return fmt.Errorf("store.SaveResponses: %w", err)
	}
	s.responses = next

	slog.Info("Response forgotten", "question", question)

	return nil
}

func (s *Service) Responses() []Pair {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return pairsOf(s.responses)
}

func (s *Service) Shutdown() error {
	return s.store.Close()
}
