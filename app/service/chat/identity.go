package chat

import (
	"context"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// handleSetName takes whatever follows the last "is" of the input as the name.
func (s *Service) handleSetName(_ context.Context, t *Turn) Reply {
	i := strings.LastIndex(t.Input, "is")
	name := capitalize(strings.TrimSpace(t.Input[i+len("is"):]))

	if name == "" {
		return say("I didn't catch your name.")
	}

	if err := t.Session.memory.SetName(name); err != nil {
		slog.Error("Failed to save name", "error", err)
		return say("I couldn't remember your name right now.")
	}

	return say("Nice to meet you, " + name + "!")
}

func (s *Service) handleWhoAmI(_ context.Context, t *Turn) Reply {
	if name, ok := t.Session.memory.Name(); ok {
		return say("You are " + name + "!")
	}

	return say("I don't know your name yet.")
}

func (s *Service) handleResetName(_ context.Context, t *Turn) Reply {
	if err := t.Session.memory.ResetName(); err != nil {
		slog.Error("Failed to remove saved name", "error", err)
	}

	return say("Name has been reset.")
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}

	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
