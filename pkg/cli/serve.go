package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/herald/pkg/cli/config"
	httpctrl "github.com/secmon-lab/herald/pkg/controller/http"
	"github.com/secmon-lab/herald/pkg/domain/model"
	"github.com/secmon-lab/herald/pkg/repository/memory"
	"github.com/secmon-lab/herald/pkg/service/sysinfo"
	"github.com/secmon-lab/herald/pkg/usecase"
	"github.com/secmon-lab/herald/pkg/utils/errutil"
	"github.com/secmon-lab/herald/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const flagLogCapacity = "log-capacity"

func cmdServe() *cli.Command {
	var addr string
	var logCapacity int
	var settingsFile config.SettingsFile
	var discordCfg config.Discord
	var broadcastCfg config.Broadcast
	var presenceCfg config.Presence
	var notifyCfg config.Notify

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":10000",
			Sources:     cli.EnvVars("HERALD_ADDR"),
			Destination: &addr,
		},
		&cli.IntFlag{
			Name:        flagLogCapacity,
			Usage:       "Number of activity log entries kept in memory",
			Value:       memory.DefaultLogCapacity,
			Sources:     cli.EnvVars("HERALD_LOG_CAPACITY"),
			Destination: &logCapacity,
		},
	}

	flags = append(flags, settingsFile.Flags()...)
	flags = append(flags, discordCfg.Flags()...)
	flags = append(flags, broadcastCfg.Flags()...)
	flags = append(flags, presenceCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Connect the bot and start the dashboard HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			settings, err := settingsFile.Load()
			if err != nil {
				return goerr.Wrap(err, "failed to load settings")
			}
			if !c.IsSet(flagLogCapacity) && settings.Log.Capacity > 0 {
				logCapacity = settings.Log.Capacity
			}
			discordCfg.ApplySettings(c, settings)
			broadcastCfg.ApplySettings(c, settings)
			presenceCfg.ApplySettings(c, settings)

			logging.Default().Info("Configuration loaded",
				"discord", discordCfg,
				"broadcast", broadcastCfg,
				"presence", presenceCfg,
				"notify", notifyCfg,
				"log_capacity", logCapacity,
			)

			repo := memory.New(memory.WithLogCapacity(logCapacity))

			discordSvc, err := discordCfg.Configure(repo.Log())
			if err != nil {
				return err
			}

			notifier, err := notifyCfg.Configure()
			if err != nil {
				return err
			}

			ucOpts := append(broadcastCfg.Options(),
				usecase.WithSystemInfo(sysinfo.New()),
				usecase.WithCommandPrefix(discordCfg.CommandPrefix()),
			)
			if notifier != nil {
				ucOpts = append(ucOpts, usecase.WithNotifier(notifier))
				logging.Default().Info("Slack broadcast notification enabled")
			}
			uc := usecase.New(repo, discordSvc, ucOpts...)

			discordSvc.OnCommand(func(ctx context.Context, msg *model.CommandMessage) {
				if err := uc.Command.Handle(ctx, msg); err != nil {
					_ = errutil.Handle(ctx, err, "failed to handle discord command")
				}
			})

			// The dashboard stays available when the gateway is down; Restart can
			// reconnect later.
			if err := discordSvc.Connect(ctx); err != nil {
				_ = errutil.Handle(ctx, err, "failed to connect to discord")
			}
			defer func() {
				if err := discordSvc.Disconnect(context.Background()); err != nil {
					logging.Default().Error("failed to disconnect from discord", "error", err.Error())
				}
			}()

			presenceWorker := presenceCfg.Configure(discordSvc, discordCfg.CommandPrefix())
			if err := presenceWorker.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start presence worker")
			}

			httpHandler, err := httpctrl.New(uc)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server", goerr.V("addr", addr))
				}
			}()

			select {
			case err := <-errCh:
				presenceWorker.Stop()
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				presenceWorker.Stop()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
