package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"chatbot/app/config"

	"github.com/charmbracelet/lipgloss"
)

// Console is the terminal side of a chat session. Input lines come from the
// channel filled by readLines, so follow-up questions asked in the middle of a
// turn read from the same stream as the session loop.
type Console struct {
	out   io.Writer
	lines <-chan string

	botName string
	plain   bool
	bot     lipgloss.Style
	user    lipgloss.Style
}

func NewConsole(cfg config.Console, out io.Writer, lines <-chan string) *Console {
	return &Console{
		out:     out,
		lines:   lines,
		botName: cfg.BotName,
		plain:   cfg.NoColor,
		bot: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true),
		user: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")),
	}
}

func (c *Console) render(style lipgloss.Style, text string) string {
	if c.plain {
		return text
	}

	return style.Render(text)
}

// Say prints one bot line.
func (c *Console) Say(text string) {
	fmt.Fprintf(c.out, "%s %s\n", c.render(c.bot, c.botName+":"), text)
}

// Reply prints a multi-line reply. Only the first line carries the bot prefix.
func (c *Console) Reply(lines []string) {
	for i, line := range lines {
		if i == 0 {
			c.Say(line)
			continue
		}
		fmt.Fprintln(c.out, line)
	}
}

func (c *Console) Prompt() {
	fmt.Fprint(c.out, c.render(c.user, "You: "))
}

// Ask prints prompt and waits for the next input line. A closed input stream
// is reported as io.EOF.
func (c *Console) Ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			slog.Warn("Failed to read input", "error", err)
		}
	}()

	return lines
}
