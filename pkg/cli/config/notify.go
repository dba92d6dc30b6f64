package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/herald/pkg/domain/interfaces"
	"github.com/secmon-lab/herald/pkg/service/notify"
	"github.com/urfave/cli/v3"
)

// Notify holds the broadcast notification flags
type Notify struct {
	slackWebhookURL string
}

func (x *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL notified after each broadcast",
			Category:    "Notification",
			Destination: &x.slackWebhookURL,
			Sources:     cli.EnvVars("HERALD_SLACK_WEBHOOK_URL"),
		},
	}
}

func (x Notify) LogValue() slog.Value {
	return slog.GroupValue(slog.Bool("slack", x.slackWebhookURL != ""))
}

// Configure returns the configured notifier, or nil when none is set
func (x *Notify) Configure() (interfaces.Notifier, error) {
	if x.slackWebhookURL == "" {
		return nil, nil
	}

	n, err := notify.NewSlackWebhook(x.slackWebhookURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure slack notifier")
	}
	return n, nil
}
