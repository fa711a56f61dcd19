package sentiment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chatbot/app/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexicon_Polarity(t *testing.T) {
	cases := []struct {
		text string
		sign int
	}{
		{"happy today", 1},
		{"really great", 1},
		{"sad and tired", -1},
		{"not happy", -1},
		{"terrible", -1},
		{"like a table", 0},
		{"", 0},
	}

	l := NewLexicon()
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			p, err := l.Polarity(context.Background(), tc.text)
			require.NoError(t, err)

			switch tc.sign {
			case 1:
				assert.Greater(t, p, 0.2)
			case -1:
				assert.Less(t, p, -0.2)
			default:
				assert.Zero(t, p)
			}
		})
	}
}

func TestLexicon_StaysInRange(t *testing.T) {
	p, err := NewLexicon().Polarity(context.Background(), "absolutely extremely incredibly perfect")
	require.NoError(t, err)
	assert.LessOrEqual(t, p, 1.0)

	p, err = NewLexicon().Polarity(context.Background(), "absolutely extremely incredibly awful")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, p, -1.0)
}

func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "cmpl-1",
			"object": "chat.completion",
			"model":  "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			}},
		})
	}))
	t.Cleanup(srv.Close)

	return srv
}

func newTestOpenAI(srv *httptest.Server) *OpenAI {
	return NewOpenAI(config.ModelConfig{
		BaseURL: srv.URL,
		Token:   "sk-test",
		Model:   "test-model",
		Timeout: 2 * time.Second,
	})
}

func TestOpenAI_Polarity(t *testing.T) {
	s := newTestOpenAI(completionServer(t, "```json\n{\"polarity\": 0.75}\n```"))

	p, err := s.Polarity(context.Background(), "wonderful day")
	require.NoError(t, err)
	assert.InDelta(t, 0.75, p, 1e-9)
}

func TestOpenAI_ClampsOutOfRange(t *testing.T) {
	s := newTestOpenAI(completionServer(t, `{"polarity": -3}`))

	p, err := s.Polarity(context.Background(), "whatever")
	require.NoError(t, err)
	assert.Equal(t, -1.0, p)
}

func TestOpenAI_RejectsMissingPolarity(t *testing.T) {
	s := newTestOpenAI(completionServer(t, `{"mood": "good"}`))

	_, err := s.Polarity(context.Background(), "whatever")
	assert.Error(t, err)
}
