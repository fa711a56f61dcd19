package engine

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"chatbot/app/client/weather"
	"chatbot/app/config"
	"chatbot/app/service/chat"
	"chatbot/app/service/memory"
	"chatbot/app/service/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type cityWeather struct{}

func (cityWeather) ByCity(_ context.Context, city string) (*weather.Report, error) {
	return &weather.Report{Temperature: 18, Description: "few clouds", Place: city}, nil
}

func (cityWeather) ByCoordinates(context.Context, string, string) (*weather.Report, error) {
	return nil, weather.ErrNotFound
}

var consoleCfg = config.Console{BotName: "ChatBot", NoColor: true}

func newMemory(t *testing.T) *memory.Service {
	t.Helper()

	store, err := memory.NewJSONStore(t.TempDir(), "user_data.json", "custom_responses.json")
	require.NoError(t, err)

	mem, err := memory.NewService(store)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mem.Shutdown() })

	return mem
}

func run(t *testing.T, mem *memory.Service, input string) string {
	t.Helper()

	var out syncBuffer
	chatSvc := chat.NewService(chat.Options{Weather: cityWeather{}})
	svc := NewService(consoleCfg, chatSvc, mem, nil, strings.NewReader(input), &out)

	require.NoError(t, svc.Run(context.Background()))

	return out.String()
}

func TestRun_BannerAndReplies(t *testing.T) {
	out := run(t, newMemory(t), "hello\nadd task: buy milk\nshow tasks\nbye\nshow tasks\n")

	assert.True(t, strings.HasPrefix(out,
		"ChatBot: Hello! I am ChatBot. Type 'bye' to exit.\n"+
			"ChatBot: Teach me using: add: question = answer\n"))
	assert.Contains(t, out, "You: ChatBot: Hello there! How can I help you?\n")
	assert.Contains(t, out, "You: ChatBot: Here are your tasks:\n1. buy milk\n")
	assert.True(t, strings.HasSuffix(out, "You: ChatBot: Goodbye!\n"))
	assert.Equal(t, 1, strings.Count(out, "Here are your tasks:"))
}

func TestRun_WelcomesBackKnownUser(t *testing.T) {
	mem := newMemory(t)
	require.NoError(t, mem.SetName("Sam"))

	out := run(t, mem, "who am i\n")

	assert.Contains(t, out, "ChatBot: Welcome back, Sam!\n")
	assert.Contains(t, out, "ChatBot: You are Sam!\n")
}

func TestRun_EndsOnEOF(t *testing.T) {
	out := run(t, newMemory(t), "hello")

	assert.Contains(t, out, "Hello there!")
	assert.NotContains(t, out, "Goodbye!")
}

func TestRun_AskReadsNextLine(t *testing.T) {
	out := run(t, newMemory(t), "weather\nOslo\nbye\n")

	assert.Contains(t, out, "You: Please enter your city: ChatBot: It is currently 18°C with few clouds in Oslo.\n")
	assert.NotContains(t, out, "I'm not sure how to respond")
}

func TestRun_PrintsQueuedMessages(t *testing.T) {
	var out syncBuffer
	events := make(chan queue.Message, 1)
	pr, pw := io.Pipe()

	svc := NewService(consoleCfg, chat.NewService(chat.Options{}), newMemory(t), events, pr, &out)

	done := make(chan error, 1)
	go func() { done <- svc.Run(context.Background()) }()

	events <- queue.Message{Source: "reminder", Text: "Reminder! stretch"}

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "ChatBot: Reminder! stretch\n")
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, pw.Close())

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("session did not stop on closed input")
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	var out syncBuffer
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	svc := NewService(consoleCfg, chat.NewService(chat.Options{}), newMemory(t), nil, pr, &out)

	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("session did not stop on cancel")
	}
}

func TestConsole_ReplyPrefixesFirstLine(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(config.Console{BotName: "Bot", NoColor: true}, &out, nil)

	c.Reply([]string{"one", "two"})

	assert.Equal(t, "Bot: one\ntwo\n", out.String())
}

func TestConsole_AskOnClosedInput(t *testing.T) {
	lines := make(chan string)
	close(lines)

	c := NewConsole(consoleCfg, io.Discard, lines)

	_, err := c.Ask(context.Background(), "? ")
	assert.ErrorIs(t, err, io.EOF)
}
