package mcpserver

import (
	"context"
	"fmt"
	"io"
	"strings"

	"chatbot/app/service/chat"
	"chatbot/app/service/memory"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/samber/do"
)

const (
	Name    = "chatbot"
	Version = "1.0.0"
)

// Service exposes the chat dispatcher as MCP tools. All clients share one
// session, the same way a single console user would.
type Service struct {
	chatSvc *chat.Service
	memory  chat.Memory
	session *chat.Session
	server  *server.MCPServer
}

func New(di *do.Injector) (*Service, error) {
	return NewService(
		do.MustInvoke[*chat.Service](di),
		do.MustInvoke[*memory.Service](di),
	), nil
}

func NewService(chatSvc *chat.Service, mem chat.Memory) *Service {
	s := &Service{
		chatSvc: chatSvc,
		memory:  mem,
		session: chat.NewSession(mem),
	}

	s.server = server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.server.AddTool(mcp.NewTool("chat",
		mcp.WithDescription("Send one line to the chatbot and get its reply. "+
			"Supports taught answers (add: question = answer), tasks, reminders, "+
			"arithmetic, weather by coordinates, encyclopedia search and conversions."),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("The line the user typed"),
		),
	), s.handleChat)

	s.server.AddTool(mcp.NewTool("taught_responses",
		mcp.WithDescription("List the questions and answers the chatbot was taught, in the order they were taught"),
	), s.handleTaughtResponses)

	return s
}

func (s *Service) Server() *server.MCPServer {
	return s.server
}

// Serve speaks MCP over the given streams until ctx is done or the input ends.
func (s *Service) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	if err := server.NewStdioServer(s.server).Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp server failed: %w", err)
	}

	return nil
}

func (s *Service) handleChat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	conv := &collector{}
	reply := s.chatSvc.Handle(ctx, s.session, conv, message)

	return mcp.NewToolResultText(strings.Join(append(conv.lines, reply.Lines...), "\n")), nil
}

func (s *Service) handleTaughtResponses(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pairs := s.memory.Responses()
	if len(pairs) == 0 {
		return mcp.NewToolResultText("Nothing has been taught yet."), nil
	}

	var sb strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&sb, "%s = %s\n", p.Question, p.Answer)
	}

	return mcp.NewToolResultText(strings.TrimSuffix(sb.String(), "\n")), nil
}

// collector gathers lines said during a turn. There is no one to answer
// follow-up questions.
type collector struct {
	lines []string
}

func (c *collector) Say(text string) {
	c.lines = append(c.lines, text)
}

func (c *collector) Ask(context.Context, string) (string, error) {
	return "", chat.ErrNoInput
}
