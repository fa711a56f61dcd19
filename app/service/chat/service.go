package chat

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"chatbot/app/client/currency"
	"chatbot/app/client/sentiment"
	"chatbot/app/client/weather"
	"chatbot/app/client/wiki"
	"chatbot/app/config"
	"chatbot/app/service/reminder"

	"github.com/samber/do"
)

type WeatherProvider interface {
	ByCity(ctx context.Context, city string) (*weather.Report, error)
	ByCoordinates(ctx context.Context, lat, lon string) (*weather.Report, error)
}

type Summarizer interface {
	Summary(ctx context.Context, topic string) (string, error)
}

type RateProvider interface {
	Rates(ctx context.Context, base string) (map[string]float64, error)
}

type Scheduler interface {
	Schedule(delay time.Duration, text string) reminder.Reminder
}

type Options struct {
	Weather   WeatherProvider
	Wiki      Summarizer
	Currency  RateProvider
	Sentiment sentiment.Scorer

	// Reminders switches the reminder rule to background delivery. When nil the
	// session waits for the reminder before taking more input.
	Reminders Scheduler

	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error
	Pick  func(n int) int
}

// Service dispatches normalized input over the ordered rule list.
type Service struct {
	opts  Options
	rules []Rule
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	opts := Options{
		Weather:   do.MustInvoke[*weather.Client](di),
		Wiki:      do.MustInvoke[*wiki.Client](di),
		Currency:  do.MustInvoke[*currency.Client](di),
		Sentiment: do.MustInvoke[sentiment.Scorer](di),
	}

	if cfg.Reminder.Mode == "async" {
		opts.Reminders = do.MustInvoke[*reminder.Service](di)
	}

	return NewService(opts), nil
}

func NewService(opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Sleep == nil {
		opts.Sleep = sleep
	}
	if opts.Pick == nil {
		opts.Pick = rand.IntN
	}

	s := &Service{opts: opts}
	s.rules = s.buildRules()

	return s
}

// buildRules lists the rules in priority order. The first match wins, so an
// earlier rule shadows any later one that would also match.
func (s *Service) buildRules() []Rule {
	return []Rule{
		{"exit", exact("bye"), s.handleExit},
		{"teach", prefix("add:"), s.handleTeach},
		{"taught", s.isTaught, s.handleTaught},
		{"show_commands", exact("show commands"), s.handleShowCommands},
		{"forget", prefix("delete:"), s.handleForget},
		{"show_memory", exact("show memory"), s.handleShowMemory},
		{"greeting", containsAny(greetingKeywords...), s.handleGreeting},
		{"bot_name", contains("your name"), s.handleBotName},
		{"how_are_you", contains("how are you"), s.handleHowAreYou},
		{"time", contains("time"), s.handleTime},
		{"date", contains("date"), s.handleDate},
		{"weather", contains("weather"), s.handleWeather},
		{"arithmetic", isArithmetic, s.handleArithmetic},
		{"search", prefix("search "), s.handleSearch},
		{"convert_currency", prefix("convert currency"), s.handleConvertCurrency},
		{"convert_units", prefix("convert"), s.handleConvertUnits},
		{"feel", prefix("feel "), s.handleFeel},
		{"joke", contains("joke"), s.handleJoke},
		{"set_name", contains("my name is"), s.handleSetName},
		{"who_am_i", contains("who am i"), s.handleWhoAmI},
		{"reset_name", contains("reset name"), s.handleResetName},
		{"add_task", prefix("add task:"), s.handleAddTask},
		{"show_tasks", exact("show tasks"), s.handleShowTasks},
		{"remind", contains("remind me in"), s.handleRemind},
		{"fallback", always, s.handleFallback},
	}
}

// Handle runs one turn: the line is normalized, recorded in the session
// history and dispatched to the first matching rule.
func (s *Service) Handle(ctx context.Context, sess *Session, conv Conversation, line string) Reply {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	t := &Turn{
		Input:   Normalize(line),
		Session: sess,
		conv:    conv,
	}

	sess.history.Add(t.Input)

	rule := selectRule(s.rules, t)
	slog.Debug("Rule matched", "rule", rule.Name, "input", t.Input)

	return rule.Handle(ctx, t)
}

// route reports which rule would handle line, without running it.
func (s *Service) route(sess *Session, line string) string {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	return selectRule(s.rules, &Turn{Input: Normalize(line), Session: sess}).Name
}

func (s *Service) ruleNames() []string {
	names := make([]string, len(s.rules))
	for i, r := range s.rules {
		names[i] = r.Name
	}

	return names
}

// Greeting is shown when a session starts.
func Greeting(m Memory) []string {
	lines := []string{
		"Hello! I am ChatBot. Type 'bye' to exit.",
		"Teach me using: add: question = answer",
	}

	if name, ok := m.Name(); ok {
		lines = append(lines, "Welcome back, "+name+"!")
	}

	return lines
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
