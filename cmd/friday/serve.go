package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"friday/internal/notifier"
	"friday/internal/recorder"
	"friday/internal/scheduler"
	"friday/internal/server"
)

func newServeCmd(opts *appOptions) *cobra.Command {
	var digestNow bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket API, Telegram bot and scheduler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()
			cfg := app.Config

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var tn *notifier.TelegramNotifier
			var sender scheduler.Sender
			if cfg.TelegramEnabled() {
				tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
				tn.ChartDir = cfg.Charts.Dir
				sender = tn
			}

			sched := scheduler.NewScheduler(ctx, cfg.Charts.Dir, cfg.Charts.Retention, app.Assistant, sender, cfg.Telegram.ChatID)
			if err := sched.RegisterAll(cfg.Schedule.CleanupCron, cfg.Schedule.DigestCron, cfg.Watchlist); err != nil {
				return err
			}
			sched.RunCleanupNow()
			sched.Start()
			defer sched.Stop()

			if tn != nil {
				go tn.StartPolling(ctx, app.handler(recorder.ChannelTelegram))
				log.Info().Msg("telegram polling started")
			}
			if digestNow {
				go sched.RunDigestNow()
			}

			srv := server.New(server.Config{
				Addr:         cfg.Addr(),
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
				ChartDir:     cfg.Charts.Dir,
			}, app.Assistant, app.Journal)

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info().Msg("shutdown signal received, stopping")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().BoolVar(&digestNow, "digest-now", false, "send the watchlist digest once at startup")
	return cmd
}
