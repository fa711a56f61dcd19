package chat

import (
	"context"
	"fmt"
	"strings"
)

func (s *Service) handleAddTask(_ context.Context, t *Turn) Reply {
	t.Session.tasks.Add(strings.TrimSpace(strings.TrimPrefix(t.Input, "add task:")))

	return say("Task added!")
}

func (s *Service) handleShowTasks(_ context.Context, t *Turn) Reply {
	items := t.Session.tasks.Items()
	if len(items) == 0 {
		return say("You have no tasks.")
	}

	lines := []string{"Here are your tasks:"}
	for i, task := range items {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, task))
	}

	return say(lines...)
}
