package chat

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	remindUsage = "Use this format: remind me in 5 seconds to drink water"

	// maxReminderSeconds is the longest delay a time.Duration can hold.
	maxReminderSeconds = math.MaxInt64 / int64(time.Second)
)

// parseReminder reads "remind me in <N> seconds to <message>". Only the leading
// integer of the delay part is used, the unit word is ignored.
func parseReminder(input string) (int, string, error) {
	_, rest, ok := strings.Cut(input, "remind me in")
	if !ok {
		return 0, "", ErrMalformed
	}

	delay, message, ok := strings.Cut(strings.TrimSpace(rest), " to ")
	if !ok {
		return 0, "", ErrMalformed
	}

	fields := strings.Fields(delay)
	if len(fields) == 0 {
		return 0, "", ErrMalformed
	}

	seconds, err := strconv.Atoi(fields[0])
	if err != nil || seconds < 0 || int64(seconds) > maxReminderSeconds {
		return 0, "", ErrMalformed
	}

	return seconds, strings.TrimSpace(message), nil
}

func (s *Service) handleRemind(ctx context.Context, t *Turn) Reply {
	seconds, message, err := parseReminder(t.Input)
	if err != nil {
		return say(remindUsage)
	}

	ack := fmt.Sprintf("Okay, I will remind you in %d seconds.", seconds)
	delay := time.Duration(seconds) * time.Second

	if s.opts.Reminders != nil {
		s.opts.Reminders.Schedule(delay, message)
		return say(ack)
	}

	t.conv.Say(ack)
	if err := s.opts.Sleep(ctx, delay); err != nil {
		return Reply{}
	}

	return say("Reminder! " + message)
}
