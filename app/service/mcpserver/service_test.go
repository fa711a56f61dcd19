package mcpserver

import (
	"context"
	"testing"

	"chatbot/app/service/chat"
	"chatbot/app/service/memory"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	t.Helper()

	store, err := memory.NewJSONStore(t.TempDir(), "user_data.json", "custom_responses.json")
	require.NoError(t, err)

	mem, err := memory.NewService(store)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mem.Shutdown() })

	return NewService(chat.NewService(chat.Options{}), mem)
}

func newClient(t *testing.T, s *Service) *client.Client {
	t.Helper()

	c, err := client.NewInProcessClient(s.Server())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))

	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{
		Name:    "chatbot-test",
		Version: "1.0.0",
	}

	_, err = c.Initialize(ctx, initRequest)
	require.NoError(t, err)

	return c
}

func callText(t *testing.T, c *client.Client, name string, args map[string]any) string {
	t.Helper()

	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args

	result, err := c.CallTool(context.Background(), request)
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)

	return text.Text
}

func TestServer_ListsTools(t *testing.T) {
	c := newClient(t, newService(t))

	tools, err := c.ListTools(context.Background(), mcp.ListToolsRequest{})
	require.NoError(t, err)

	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"chat", "taught_responses"}, names)
}

func TestServer_ChatSharesSession(t *testing.T) {
	c := newClient(t, newService(t))

	assert.Equal(t, "Got it! I'll remember that.", callText(t, c, "chat", map[string]any{"message": "add: ping = pong"}))
	assert.Equal(t, "pong", callText(t, c, "chat", map[string]any{"message": "PING"}))

	callText(t, c, "chat", map[string]any{"message": "add task: write tests"})
	assert.Equal(t, "Here are your tasks:\n1. write tests", callText(t, c, "chat", map[string]any{"message": "show tasks"}))

	assert.Equal(t, "ping = pong", callText(t, c, "taught_responses", nil))
}

func TestServer_TaughtResponsesEmpty(t *testing.T) {
	c := newClient(t, newService(t))

	assert.Equal(t, "Nothing has been taught yet.", callText(t, c, "taught_responses", nil))
}

func TestHandleChat_MissingMessage(t *testing.T) {
	s := newService(t)

	result, err := s.handleChat(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleChat_WeatherAsksForCoordinates(t *testing.T) {
	s := newService(t)

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]any{"message": "weather"}

	result, err := s.handleChat(context.Background(), request)
	require.NoError(t, err)
	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "coordinates")
}
