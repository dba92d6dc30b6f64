package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Settings is the optional TOML settings file. Values act as defaults for
// flags that were not set on the command line or in the environment.
type Settings struct {
	Discord   DiscordSettings   `toml:"discord"`
	Broadcast BroadcastSettings `toml:"broadcast"`
	Log       LogSettings       `toml:"log"`
	Presence  PresenceSettings  `toml:"presence"`
}

type DiscordSettings struct {
	GuildID       string `toml:"guild_id"`
	CommandPrefix string `toml:"command_prefix"`
}

type BroadcastSettings struct {
	DMConcurrency int `toml:"dm_concurrency"`
}

type LogSettings struct {
	Capacity int `toml:"capacity"`
}

type PresenceSettings struct {
	Interval string   `toml:"interval"`
	Messages []string `toml:"messages"`
}

// IntervalDuration parses Interval. An empty value yields zero.
func (p *PresenceSettings) IntervalDuration() (time.Duration, error) {
	if p.Interval == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(p.Interval)
	if err != nil {
		return 0, goerr.Wrap(ErrInvalidConfig, "invalid presence interval",
			goerr.V(FieldKey, "presence.interval"), goerr.V(ValueKey, p.Interval))
	}
	return d, nil
}

// Validate checks value ranges. Zero values mean "not set" and are valid.
func (s *Settings) Validate() error {
	if len(s.Discord.CommandPrefix) > 5 {
		return goerr.Wrap(ErrInvalidConfig, "command prefix must be at most 5 characters",
			goerr.V(FieldKey, "discord.command_prefix"), goerr.V(ValueKey, s.Discord.CommandPrefix))
	}
	if s.Broadcast.DMConcurrency < 0 {
		return goerr.Wrap(ErrInvalidConfig, "dm concurrency must not be negative",
			goerr.V(FieldKey, "broadcast.dm_concurrency"), goerr.V(ValueKey, s.Broadcast.DMConcurrency))
	}
	if s.Log.Capacity < 0 {
		return goerr.Wrap(ErrInvalidConfig, "log capacity must not be negative",
			goerr.V(FieldKey, "log.capacity"), goerr.V(ValueKey, s.Log.Capacity))
	}
	d, err := s.Presence.IntervalDuration()
	if err != nil {
		return err
	}
	if d < 0 {
		return goerr.Wrap(ErrInvalidConfig, "presence interval must not be negative",
			goerr.V(FieldKey, "presence.interval"), goerr.V(ValueKey, s.Presence.Interval))
	}
	return nil
}

// LoadSettings reads and validates a TOML settings file
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "settings file does not exist", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read settings file", goerr.V(ConfigPathKey, path))
	}

	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse settings file",
			goerr.V(ConfigPathKey, path), goerr.V("error", err.Error()))
	}

	if err := s.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid settings file", goerr.V(ConfigPathKey, path))
	}
	return &s, nil
}

// SettingsFile holds the --config flag
type SettingsFile struct {
	path string
}

func (x *SettingsFile) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to a TOML settings file",
			Sources:     cli.EnvVars("HERALD_CONFIG"),
			Destination: &x.path,
		},
	}
}

// Load returns the settings, or empty settings when no file is configured
func (x *SettingsFile) Load() (*Settings, error) {
	if x.path == "" {
		return &Settings{}, nil
	}
	return LoadSettings(x.path)
}
