package chat

import (
	"context"
	"log/slog"
	"strings"
)

const (
	positiveThreshold = 0.2
	negativeThreshold = -0.2
)

func (s *Service) handleFeel(ctx context.Context, t *Turn) Reply {
	text := strings.TrimSpace(strings.TrimPrefix(t.Input, "feel "))

	polarity, err := s.opts.Sentiment.Polarity(ctx, text)
	if err != nil {
		slog.Warn("Sentiment scoring failed", "error", err)
		return say("I couldn't tell how you feel right now.")
	}

	switch {
	case polarity > positiveThreshold:
		return say("You sound positive!")
	case polarity < negativeThreshold:
		return say("I sense you're feeling down. Want to talk?")
	default:
		return say("You seem neutral.")
	}
}
