package chat

import (
	"context"
	"strings"

	"github.com/elliotchance/pie/v2"
)

type Rule struct {
	Name   string
	Match  func(t *Turn) bool
	Handle func(ctx context.Context, t *Turn) Reply
}

// Normalize lower-cases and trims a raw input line. Punctuation is kept.
func Normalize(line string) string {
	return strings.ToLower(strings.TrimSpace(line))
}

func exact(s string) func(t *Turn) bool {
	return func(t *Turn) bool { return t.Input == s }
}

func prefix(s string) func(t *Turn) bool {
	return func(t *Turn) bool { return strings.HasPrefix(t.Input, s) }
}

func contains(s string) func(t *Turn) bool {
	return func(t *Turn) bool { return strings.Contains(t.Input, s) }
}

func containsAny(keywords ...string) func(t *Turn) bool {
	return func(t *Turn) bool {
		return pie.Any(keywords, func(k string) bool {
			return strings.Contains(t.Input, k)
		})
	}
}

func always(*Turn) bool {
	return true
}

// selectRule returns the first rule matching t. The last rule must always match.
func selectRule(rules []Rule, t *Turn) Rule {
	i := pie.FindFirstUsing(rules, func(r Rule) bool {
		return r.Match(t)
	})
	if i < 0 {
		i = len(rules) - 1
	}

	return rules[i]
}
