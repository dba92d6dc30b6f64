package config

import (
	"log/slog"

	"github.com/secmon-lab/herald/pkg/usecase"
	"github.com/urfave/cli/v3"
)

const flagDMConcurrency = "dm-concurrency"

// Broadcast holds the DM delivery flags
type Broadcast struct {
	dmConcurrency int
}

func (x *Broadcast) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        flagDMConcurrency,
			Usage:       "Number of direct messages sent in parallel (1-10)",
			Category:    "Broadcast",
			Value:       usecase.DefaultDMConcurrency,
			Destination: &x.dmConcurrency,
			Sources:     cli.EnvVars("HERALD_DM_CONCURRENCY"),
		},
	}
}

func (x Broadcast) LogValue() slog.Value {
	return slog.GroupValue(slog.Int("dm_concurrency", x.dmConcurrency))
}

func (x *Broadcast) ApplySettings(c *cli.Command, s *Settings) {
	if !c.IsSet(flagDMConcurrency) && s.Broadcast.DMConcurrency > 0 {
		x.dmConcurrency = s.Broadcast.DMConcurrency
	}
}

// Options returns use case options for the configured delivery settings
func (x *Broadcast) Options() []usecase.Option {
	return []usecase.Option{usecase.WithDMConcurrency(x.dmConcurrency)}
}
