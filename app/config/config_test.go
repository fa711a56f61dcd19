package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("CHATBOT_WEATHER_API_KEY", "")
	t.Setenv("CHATBOT_OPENAI_TOKEN", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Storage.Driver)
	assert.Equal(t, "user_data.json", cfg.Storage.UserFile)
	assert.Equal(t, "custom_responses.json", cfg.Storage.CustomFile)
	assert.Equal(t, "blocking", cfg.Reminder.Mode)
	assert.Equal(t, "lexicon", cfg.Sentiment.Provider)
	assert.Equal(t, 10, cfg.Wiki.Sentences)
	assert.Equal(t, 10*time.Second, cfg.Weather.Timeout)
	assert.Equal(t, "ChatBot", cfg.Console.BotName)
}

func TestLoad_ParsesYAML(t *testing.T) {
	t.Setenv("CHATBOT_WEATHER_API_KEY", "")

	path := writeConfig(t, `
storage:
  driver: sqlite
  dir: /tmp/bot
weather:
  api_key: abc
  timeout: 3s
reminder:
  mode: async
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/bot", cfg.Storage.Dir)
	assert.Equal(t, "abc", cfg.Weather.APIKey)
	assert.Equal(t, 3*time.Second, cfg.Weather.Timeout)
	assert.Equal(t, "async", cfg.Reminder.Mode)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("CHATBOT_WEATHER_API_KEY", "from-env")

	cfg, err := Load(writeConfig(t, "weather:\n  api_key: from-file\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Weather.APIKey)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	t.Setenv("CHATBOT_OPENAI_TOKEN", "")

	cases := map[string]string{
		"unknown driver":      "storage:\n  driver: postgres\n",
		"unknown reminder":    "reminder:\n  mode: later\n",
		"openai without key":  "sentiment:\n  provider: openai\n  openai:\n    model: gpt-4o-mini\n",
		"broken yaml":         "storage: [",
		"negative sentences":  "wiki:\n  sentences: -1\n",
		"unknown log level":   "log:\n  level: loud\n",
		"bad weather baseurl": "weather:\n  base_url: not a url\n",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
