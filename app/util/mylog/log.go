package mylog

import (
	"context"
	"io"
	"log/slog"
	"os"

	"chatbot/app/config"

	"github.com/phsym/console-slog"
	slogmulti "github.com/samber/slog-multi"
	slogtelegram "github.com/samber/slog-telegram/v2"
)

// Preinit installs a console logger usable before the config is loaded.
func Preinit() {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug,
	})))
}

// Init routes records to stderr and, when configured, to telegram.
// Records reach telegram when they are errors or carry a "telegram" attribute.
func Init(cfg *config.Config) error {
	return InitWriter(cfg, os.Stderr)
}

func InitWriter(cfg *config.Config, w io.Writer) error {
	level := ParseLevel(cfg.Log.Level)

	router := slogmulti.Router()

	router = router.Add(console.NewHandler(w, &console.HandlerOptions{
		AddSource: level == slog.LevelDebug,
		Level:     level,
		NoColor:   cfg.Console.NoColor,
	}))

	if cfg.Log.Telegram.Token != "" {
		router = router.Add(
			slogtelegram.Option{
				Level:     slog.LevelDebug,
				Token:     cfg.Log.Telegram.Token,
				Username:  cfg.Log.Telegram.ChatID,
				AddSource: true,
			}.NewTelegramHandler(),
			isTelegramRecord,
		)
	}

	slog.SetDefault(slog.New(router.Handler()))

	return nil
}

func isTelegramRecord(_ context.Context, r slog.Record) bool {
	hasTelegram := false

	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key == "telegram" {
			hasTelegram = true
			return false
		}

		return true
	})

	return r.Level == slog.LevelError || hasTelegram
}

func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
