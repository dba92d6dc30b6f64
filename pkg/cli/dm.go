package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/herald/pkg/cli/config"
	"github.com/secmon-lab/herald/pkg/repository/memory"
	"github.com/secmon-lab/herald/pkg/usecase"
	"github.com/secmon-lab/herald/pkg/utils/errutil"
	"github.com/secmon-lab/herald/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// cmdDM sends a single broadcast from the command line. Individual delivery
// failures are reported in the tally, not as a command failure.
func cmdDM() *cli.Command {
	var roleID string
	var message string
	var settingsFile config.SettingsFile
	var discordCfg config.Discord
	var broadcastCfg config.Broadcast
	var notifyCfg config.Notify

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "role-id",
			Aliases:     []string{"r"},
			Usage:       "ID of the role whose members receive the message",
			Required:    true,
			Destination: &roleID,
		},
		&cli.StringFlag{
			Name:        "message",
			Aliases:     []string{"m"},
			Usage:       "Message text",
			Required:    true,
			Destination: &message,
		},
	}
	flags = append(flags, settingsFile.Flags()...)
	flags = append(flags, discordCfg.Flags()...)
	flags = append(flags, broadcastCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)

	return &cli.Command{
		Name:  "dm",
		Usage: "Send a direct message to every member of a role and exit",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			settings, err := settingsFile.Load()
			if err != nil {
				return goerr.Wrap(err, "failed to load settings")
			}
			discordCfg.ApplySettings(c, settings)
			broadcastCfg.ApplySettings(c, settings)

			repo := memory.New()
			discordSvc, err := discordCfg.Configure(repo.Log())
			if err != nil {
				return err
			}

			notifier, err := notifyCfg.Configure()
			if err != nil {
				return err
			}
			// The notifier is called inline below so the process does not exit
			// before the post completes.
			uc := usecase.New(repo, discordSvc, broadcastCfg.Options()...)

			if err := discordSvc.Connect(ctx); err != nil {
				return goerr.Wrap(err, "failed to connect to discord")
			}
			defer func() {
				if err := discordSvc.Disconnect(context.Background()); err != nil {
					logging.Default().Error("failed to disconnect from discord", "error", err.Error())
				}
			}()

			result, err := uc.Broadcast.Broadcast(ctx, roleID, message)
			if err != nil {
				return goerr.Wrap(err, "failed to send DMs", goerr.V(usecase.RoleIDKey, roleID))
			}

			if notifier != nil {
				if err := notifier.NotifyBroadcast(ctx, result); err != nil {
					_ = errutil.Handle(ctx, err, "failed to notify broadcast result")
				}
			}

			if _, err := fmt.Fprintln(c.Root().Writer, result.Summary()); err != nil {
				return goerr.Wrap(err, "failed to write result")
			}
			return nil
		},
	}
}
