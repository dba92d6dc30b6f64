package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/herald/pkg/domain/interfaces"
	"github.com/secmon-lab/herald/pkg/service/discord"
	"github.com/urfave/cli/v3"
)

const (
	flagDiscordGuildID = "discord-guild-id"
	flagCommandPrefix  = "command-prefix"
)

type Discord struct {
	token          string
	guildID        string
	commandPrefix  string
	connectTimeout time.Duration
}

func (x *Discord) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "discord-token",
			Usage:       "Discord bot token",
			Category:    "Discord",
			Destination: &x.token,
			Sources:     cli.EnvVars("HERALD_DISCORD_TOKEN"),
		},
		&cli.StringFlag{
			Name:        flagDiscordGuildID,
			Usage:       "Active guild ID (defaults to the first joined guild)",
			Category:    "Discord",
			Destination: &x.guildID,
			Sources:     cli.EnvVars("HERALD_DISCORD_GUILD_ID"),
		},
		&cli.StringFlag{
			Name:        flagCommandPrefix,
			Usage:       "Prefix of text commands such as !ping",
			Category:    "Discord",
			Value:       discord.DefaultCommandPrefix,
			Destination: &x.commandPrefix,
			Sources:     cli.EnvVars("HERALD_COMMAND_PREFIX"),
		},
		&cli.DurationFlag{
			Name:        "discord-connect-timeout",
			Usage:       "How long to wait for the Discord gateway to become ready",
			Category:    "Discord",
			Value:       discord.DefaultConnectTimeout,
			Destination: &x.connectTimeout,
			Sources:     cli.EnvVars("HERALD_DISCORD_CONNECT_TIMEOUT"),
		},
	}
}

func (x Discord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("token.len", len(x.token)),
		slog.String("guild_id", x.guildID),
		slog.String("command_prefix", x.commandPrefix),
		slog.String("connect_timeout", x.connectTimeout.String()),
	)
}

func (x *Discord) GuildID() string {
	return x.guildID
}

func (x *Discord) CommandPrefix() string {
	return x.commandPrefix
}

// ApplySettings fills flags that were not set explicitly from the settings file
func (x *Discord) ApplySettings(c *cli.Command, s *Settings) {
	if !c.IsSet(flagDiscordGuildID) && s.Discord.GuildID != "" {
		x.guildID = s.Discord.GuildID
	}
	if !c.IsSet(flagCommandPrefix) && s.Discord.CommandPrefix != "" {
		x.commandPrefix = s.Discord.CommandPrefix
	}
}

// Configure creates the Discord gateway adapter. Connection events are
// recorded in logRepo when it is not nil.
func (x *Discord) Configure(logRepo interfaces.LogRepository) (discord.Service, error) {
	token := strings.TrimSpace(strings.TrimPrefix(x.token, "Bot "))
	if token == "" {
		return nil, goerr.Wrap(ErrMissingToken, "set --discord-token or HERALD_DISCORD_TOKEN")
	}

	opts := []discord.Option{
		discord.WithGuildID(x.guildID),
		discord.WithCommandPrefix(x.commandPrefix),
	}
	if x.connectTimeout > 0 {
		opts = append(opts, discord.WithConnectTimeout(x.connectTimeout))
	}
	if logRepo != nil {
		opts = append(opts, discord.WithLogRepository(logRepo))
	}

	svc, err := discord.New(token, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create discord service")
	}
	return svc, nil
}
