package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sentinelbot/sentinel/internal/bot"
	"github.com/sentinelbot/sentinel/internal/setup"
	"github.com/sentinelbot/sentinel/internal/worker/expiry"
	"github.com/urfave/cli/v3"
)

const (
	// BotLogDir specifies where bot log files are stored.
	BotLogDir = "logs/bot_logs"

	// ShutdownTimeout bounds how long gateway teardown may take.
	ShutdownTimeout = 10 * time.Second
)

func main() {
	app := &cli.Command{
		Name:  "sentinel",
		Usage: "Start the moderation bot",
		Action: func(ctx context.Context, _ *cli.Command) error {
			return run(ctx)
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	app, err := setup.InitializeApp(ctx, BotLogDir)
	if err != nil {
		return err
	}
	defer app.Cleanup()

	discordBot, err := bot.New(app.DB, app.Config, app.Logger)
	if err != nil {
		return err
	}

	if err := discordBot.Start(ctx); err != nil {
		return err
	}

	// The sweeper shares the gateway client for its REST calls
	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	sweeper := expiry.New(app.DB, discordBot.Client(), app.Config, app.Logger.Named("expiry"))
	go sweeper.Start(workerCtx)

	app.Logger.Info("Bot started, waiting for interrupt signal")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	app.Logger.Info("Shutting down")
	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	discordBot.Close(shutdownCtx)

	return nil
}
