package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"chatbot/app/client/currency"
	"chatbot/app/client/sentiment"
	"chatbot/app/client/weather"
	"chatbot/app/client/wiki"
	"chatbot/app/config"
	"chatbot/app/service/chat"
	"chatbot/app/service/engine"
	"chatbot/app/service/mcpserver"
	"chatbot/app/service/memory"
	"chatbot/app/service/queue"
	"chatbot/app/service/reminder"
	"chatbot/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "chatbot",
	Short:        "Rule-based console chatbot that can be taught new answers",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConsole(cmd.Context())
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the chatbot as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMCP(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the YAML config file")
	rootCmd.AddCommand(mcpCmd)
}

func main() {
	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		slog.Info("Shutting down...")

		cancel()
	}()

	if err := rootCmd.ExecuteContext(appCtx); err != nil {
		log.Fatalf("chatbot failed: %v", err)
	}
}

func setup(forceBlockingReminders bool) (*do.Injector, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}

	// nobody reads background messages over MCP
	if forceBlockingReminders {
		cfg.Reminder.Mode = "blocking"
	}

	if err = mylog.Init(cfg); err != nil {
		return nil, fmt.Errorf("logging init failed: %w", err)
	}

	di := do.New()
	do.ProvideValue(di, cfg)

	do.Provide(di, weather.NewClient)
	do.Provide(di, wiki.NewClient)
	do.Provide(di, currency.NewClient)
	do.Provide(di, sentiment.New)
	do.Provide(di, memory.New)
	do.Provide(di, queue.New)
	do.Provide(di, reminder.New)
	do.Provide(di, chat.New)
	do.Provide(di, engine.New)
	do.Provide(di, mcpserver.New)

	return di, nil
}

func runConsole(ctx context.Context) error {
	di, err := setup(false)
	if err != nil {
		return err
	}
	defer di.Shutdown()

	engineSvc, err := do.Invoke[*engine.Service](di)
	if err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}
	reminderSvc := do.MustInvoke[*reminder.Service](di)

	slog.Debug("Service started")

	group, groupCtx := errgroup.WithContext(ctx)
	sessionCtx, stop := context.WithCancel(groupCtx)
	defer stop()

	group.Go(func() error {
		defer stop()
		return engineSvc.Run(sessionCtx)
	})
	group.Go(func() error {
		return reminderSvc.Run(sessionCtx)
	})

	return group.Wait()
}

func runMCP(ctx context.Context) error {
	di, err := setup(true)
	if err != nil {
		return err
	}
	defer di.Shutdown()

	mcpSvc, err := do.Invoke[*mcpserver.Service](di)
	if err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}

	slog.Info("MCP server started")

	return mcpSvc.Serve(ctx, os.Stdin, os.Stdout)
}
