package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.yaml"

type Config struct {
	Log       Log       `yaml:"log"`
	Console   Console   `yaml:"console"`
	Storage   Storage   `yaml:"storage"`
	Weather   Weather   `yaml:"weather"`
	Wiki      Wiki      `yaml:"wiki"`
	Currency  Currency  `yaml:"currency"`
	Sentiment Sentiment `yaml:"sentiment"`
	Reminder  Reminder  `yaml:"reminder"`
}

type Console struct {
	// Name printed in front of every reply
	BotName string `yaml:"bot_name" example:"ChatBot" validate:"required"`
	// Disable ANSI colors
	NoColor bool `yaml:"no_color" example:"false"`
}

type Storage struct {
	// Storage driver: json files or a single sqlite database
	Driver string `yaml:"driver" example:"json" validate:"required,oneof=json sqlite"`
	// Directory holding the persisted documents
	Dir string `yaml:"dir" example:"data" validate:"required"`
	// Identity document file name (json driver)
	UserFile string `yaml:"user_file" example:"user_data.json" validate:"required"`
	// Taught responses document file name (json driver)
	CustomFile string `yaml:"custom_file" example:"custom_responses.json" validate:"required"`
	// Database file name (sqlite driver)
	SQLiteFile string `yaml:"sqlite_file" example:"chatbot.db" validate:"required"`
}

type Weather struct {
	// OpenWeatherMap API key
	APIKey string `yaml:"api_key" example:"1e7c4fa56ca5278859fec5f89e0be068"`
	// Current weather endpoint
	BaseURL string `yaml:"base_url" example:"https://api.openweathermap.org/data/2.5/weather" validate:"required,url"`
	// Request timeout
	Timeout time.Duration `yaml:"timeout" example:"10s" validate:"gt=0"`
}

type Wiki struct {
	// Page summary endpoint, topic is appended
	BaseURL string `yaml:"base_url" example:"https://en.wikipedia.org/api/rest_v1/page/summary/" validate:"required,url"`
	// Maximum number of sentences in a reply
	Sentences int `yaml:"sentences" example:"10" validate:"gt=0"`
	// Request timeout
	Timeout time.Duration `yaml:"timeout" example:"10s" validate:"gt=0"`
}

type Currency struct {
	// Latest rates endpoint, base currency code is appended
	BaseURL string `yaml:"base_url" example:"https://open.er-api.com/v6/latest/" validate:"required,url"`
	// Request timeout
	Timeout time.Duration `yaml:"timeout" example:"10s" validate:"gt=0"`
}

type Sentiment struct {
	// Sentiment backend
	Provider string `yaml:"provider" example:"lexicon" validate:"required,oneof=lexicon openai"`
	// Model used when provider is openai
	OpenAI ModelConfig `yaml:"openai"`
}

type ModelConfig struct {
	// OpenAI base url
	BaseURL string `yaml:"base_url" example:"https://openrouter.ai/api/v1" validate:"omitempty,url"`
	// OpenAI token
	Token string `yaml:"token" example:"sk-proj-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX"`
	// OpenAI model
	Model string `yaml:"model" example:"gpt-4o-mini"`
	// Request timeout
	Timeout time.Duration `yaml:"timeout" example:"30s"`
}

type Reminder struct {
	// blocking suspends the session until the reminder fires, async keeps accepting input
	Mode string `yaml:"mode" example:"blocking" validate:"required,oneof=blocking async"`
}

type Log struct {
	// Minimum level: debug, info, warn, error
	Level string `yaml:"level" example:"info" validate:"omitempty,oneof=debug info warn error"`
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

// Load reads the YAML config at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	var result Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, oops.Errorf("failed to read config file: %w", err)
	default:
		if err = yaml.Unmarshal(data, &result); err != nil {
			return nil, oops.Errorf("failed to parse YAML config: %w", err)
		}
	}

	applyDefaults(&result)
	applyEnv(&result)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	if result.Sentiment.Provider == "openai" && (result.Sentiment.OpenAI.Token == "" || result.Sentiment.OpenAI.Model == "") {
		return nil, oops.Errorf("sentiment provider openai requires openai.token and openai.model")
	}

	return &result, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Console.BotName == "" {
		cfg.Console.BotName = "ChatBot"
	}

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "json"
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = "data"
	}
	if cfg.Storage.UserFile == "" {
		cfg.Storage.UserFile = "user_data.json"
	}
	if cfg.Storage.CustomFile == "" {
		cfg.Storage.CustomFile = "custom_responses.json"
	}
	if cfg.Storage.SQLiteFile == "" {
		cfg.Storage.SQLiteFile = "chatbot.db"
	}

	if cfg.Weather.BaseURL == "" {
		cfg.Weather.BaseURL = "https://api.openweathermap.org/data/2.5/weather"
	}
	if cfg.Weather.Timeout == 0 {
		cfg.Weather.Timeout = 10 * time.Second
	}

	if cfg.Wiki.BaseURL == "" {
		cfg.Wiki.BaseURL = "https://en.wikipedia.org/api/rest_v1/page/summary/"
	}
	if cfg.Wiki.Sentences == 0 {
		cfg.Wiki.Sentences = 10
	}
	if cfg.Wiki.Timeout == 0 {
		cfg.Wiki.Timeout = 10 * time.Second
	}

	if cfg.Currency.BaseURL == "" {
		cfg.Currency.BaseURL = "https://open.er-api.com/v6/latest/"
	}
	if cfg.Currency.Timeout == 0 {
		cfg.Currency.Timeout = 10 * time.Second
	}

	if cfg.Sentiment.Provider == "" {
		cfg.Sentiment.Provider = "lexicon"
	}
	if cfg.Sentiment.OpenAI.BaseURL == "" {
		cfg.Sentiment.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Sentiment.OpenAI.Timeout == 0 {
		cfg.Sentiment.OpenAI.Timeout = 30 * time.Second
	}

	if cfg.Reminder.Mode == "" {
		cfg.Reminder.Mode = "blocking"
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CHATBOT_WEATHER_API_KEY"); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv("CHATBOT_OPENAI_TOKEN"); v != "" {
		cfg.Sentiment.OpenAI.Token = v
	}
}
