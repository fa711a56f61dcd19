package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"chatbot/app/client/wiki"
)

func (s *Service) handleSearch(ctx context.Context, t *Turn) Reply {
	topic := strings.TrimSpace(strings.TrimPrefix(t.Input, "search "))

	summary, err := s.opts.Wiki.Summary(ctx, topic)
	if err != nil {
		if !errors.Is(err, wiki.ErrNotFound) {
			slog.Warn("Encyclopedia lookup failed", "topic", topic, "error", err)
		}
		return say("Couldn't find that topic.")
	}

	return say(summary)
}
