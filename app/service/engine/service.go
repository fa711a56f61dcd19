package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"chatbot/app/config"
	"chatbot/app/service/chat"
	"chatbot/app/service/memory"
	"chatbot/app/service/queue"

	"github.com/samber/do"
)

// Service runs the interactive console session: it prints the banner, reads
// input lines, dispatches them and prints background messages as they arrive.
type Service struct {
	cfg     config.Console
	chatSvc *chat.Service
	memory  chat.Memory
	events  <-chan queue.Message

	in  io.Reader
	out io.Writer
}

func New(di *do.Injector) (*Service, error) {
	return NewService(
		do.MustInvoke[*config.Config](di).Console,
		do.MustInvoke[*chat.Service](di),
		do.MustInvoke[*memory.Service](di),
		do.MustInvoke[*queue.Service](di).Channel(),
		os.Stdin,
		os.Stdout,
	), nil
}

func NewService(
	cfg config.Console,
	chatSvc *chat.Service,
	mem chat.Memory,
	events <-chan queue.Message,
	in io.Reader,
	out io.Writer,
) *Service {
	return &Service{
		cfg:     cfg,
		chatSvc: chatSvc,
		memory:  mem,
		events:  events,
		in:      in,
		out:     out,
	}
}

// Run blocks until the user says goodbye, the input ends or ctx is done.
func (s *Service) Run(ctx context.Context) error {
	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := readLines(readCtx, s.in)
	console := NewConsole(s.cfg, s.out, lines)
	sess := chat.NewSession(s.memory)
	events := s.events

	for _, line := range chat.Greeting(s.memory) {
		console.Say(line)
	}

	for {
		console.Prompt()

		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return nil

		case msg, ok := <-events:
			if !ok {
				events = nil
				fmt.Fprintln(s.out)
				continue
			}
			fmt.Fprintln(s.out)
			console.Say(msg.Text)

		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				return nil
			}

			start := time.Now()
			reply := s.chatSvc.Handle(ctx, sess, console, line)
			console.Reply(reply.Lines)

			slog.Debug("Processed message",
				"text", line,
				"duration", time.Since(start))

			if reply.Exit {
				return nil
			}
		}
	}
}
