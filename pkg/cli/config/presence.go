package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/secmon-lab/herald/pkg/service/worker"
	"github.com/urfave/cli/v3"
)

const (
	flagPresenceInterval = "presence-interval"
	flagPresenceMessage  = "presence-message"

	// DefaultPresenceInterval is how often the bot's status text rotates
	DefaultPresenceInterval = 15 * time.Second
)

// Presence holds the status rotation flags
type Presence struct {
	interval time.Duration
	messages []string
}

func (x *Presence) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        flagPresenceInterval,
			Usage:       "Status rotation interval (0 disables rotation)",
			Category:    "Presence",
			Value:       DefaultPresenceInterval,
			Destination: &x.interval,
			Sources:     cli.EnvVars("HERALD_PRESENCE_INTERVAL"),
		},
		&cli.StringSliceFlag{
			Name:        flagPresenceMessage,
			Usage:       "Status text to rotate through, repeatable. {prefix} expands to the command prefix",
			Category:    "Presence",
			Destination: &x.messages,
			Sources:     cli.EnvVars("HERALD_PRESENCE_MESSAGES"),
		},
	}
}

func (x Presence) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("interval", x.interval.String()),
		slog.Int("messages", len(x.messages)),
	)
}

// ApplySettings fills flags that were not set explicitly from the settings
// file. Settings must have passed Validate.
func (x *Presence) ApplySettings(c *cli.Command, s *Settings) {
	if !c.IsSet(flagPresenceInterval) && s.Presence.Interval != "" {
		if d, err := s.Presence.IntervalDuration(); err == nil {
			x.interval = d
		}
	}
	if !c.IsSet(flagPresenceMessage) && len(s.Presence.Messages) > 0 {
		x.messages = s.Presence.Messages
	}
}

// Messages returns the status texts with {prefix} expanded. Without any
// configured message the defaults advertise the dmrole command.
func (x *Presence) Messages(prefix string) []string {
	src := x.messages
	if len(src) == 0 {
		src = []string{"{prefix}dmrole", "DMs to roles"}
	}

	messages := make([]string, len(src))
	for i, m := range src {
		messages[i] = strings.ReplaceAll(m, "{prefix}", prefix)
	}
	return messages
}

// Configure builds the rotation worker for updater
func (x *Presence) Configure(updater worker.PresenceUpdater, prefix string) *worker.PresenceWorker {
	return worker.NewPresenceWorker(updater, x.Messages(prefix), x.interval)
}
