package chat

import (
	"context"
	"errors"
	"sync"

	"chatbot/app/service/conversation"
	"chatbot/app/service/memory"
)

// ErrNoInput is returned by a Conversation that cannot ask follow-up questions.
var ErrNoInput = errors.New("no interactive input available")

// ErrMalformed marks a command that matched a rule but could not be parsed.
var ErrMalformed = errors.New("malformed command")

// Conversation is the user-facing side of a session.
type Conversation interface {
	// Say delivers a line before the turn's reply is ready.
	Say(text string)
	// Ask shows prompt and waits for one raw line of input.
	Ask(ctx context.Context, prompt string) (string, error)
}

// Memory is the persisted part of the session state.
type Memory interface {
	Name() (string, bool)
	SetName(name string) error
	ResetName() error

	Answer(question string) (string, bool)
	Teach(question, answer string) error
	Forget(question string) error
	Responses() []memory.Pair
}

// Session is everything the rules read and mutate for one user. Turns on the
// same session are serialized.
type Session struct {
	mu sync.Mutex

	memory  Memory
	history conversation.History
	tasks   conversation.Tasks
}

func NewSession(memory Memory) *Session {
	return &Session{memory: memory}
}

func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.history.Lines()
}

func (s *Session) Tasks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tasks.Items()
}

// Turn is one normalized input line being dispatched.
type Turn struct {
	Input   string
	Session *Session

	conv Conversation
}

type Reply struct {
	Lines []string
	Exit  bool
}

func say(lines ...string) Reply {
	return Reply{Lines: lines}
}
