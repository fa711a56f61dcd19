package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"chatbot/app/service/memory"
)

const teachUsage = "Use format: add: question = answer"

func (s *Service) handleTeach(_ context.Context, t *Turn) Reply {
	_, pair, _ := strings.Cut(t.Input, ":")

	question, answer, ok := strings.Cut(pair, "=")
	question = strings.TrimSpace(question)
	if !ok || question == "" {
		return say(teachUsage)
	}

	if err := t.Session.memory.Teach(question, strings.TrimSpace(answer)); err != nil {
		slog.Error("Failed to save taught response", "question", question, "error", err)
		return say("I couldn't save that right now.")
	}

	return say("Got it! I'll remember that.")
}

func (s *Service) isTaught(t *Turn) bool {
	_, ok := t.Session.memory.Answer(t.Input)
	return ok
}

func (s *Service) handleTaught(_ context.Context, t *Turn) Reply {
	answer, _ := t.Session.memory.Answer(t.Input)
	return say(answer)
}

func (s *Service) handleShowCommands(_ context.Context, t *Turn) Reply {
	pairs := t.Session.memory.Responses()
	if len(pairs) == 0 {
		return say("You haven't taught me anything yet!")
	}

	lines := []string{"Here are your custom questions and answers:"}
	for _, p := range pairs {
		lines = append(lines, fmt.Sprintf("- %s = %s", p.Question, p.Answer))
	}

	return say(lines...)
}

func (s *Service) handleForget(_ context.Context, t *Turn) Reply {
	question := strings.TrimSpace(strings.TrimPrefix(t.Input, "delete:"))

	err := t.Session.memory.Forget(question)
	switch {
	case errors.Is(err, memory.ErrNotFound):
		return say("I couldn't find that question to delete.")
	case err != nil:
		slog.Error("Failed to delete taught response", "question", question, "error", err)
		return say("I couldn't delete that right now.")
	}

	return say(fmt.Sprintf("Deleted the command '%s'.", question))
}

func (s *Service) handleShowMemory(_ context.Context, t *Turn) Reply {
	lines := t.Session.history.Lines()
	if len(lines) == 0 {
		return say("Memory is empty.")
	}

	reply := []string{"Here's our recent chat:"}
	for _, line := range lines {
		reply = append(reply, "- "+line)
	}

	return say(reply...)
}
