package usecase

import (
	"github.com/secmon-lab/herald/pkg/domain/interfaces"
	"github.com/secmon-lab/herald/pkg/service/discord"
	"github.com/secmon-lab/herald/pkg/service/sysinfo"
)

const (
	// DefaultDMConcurrency sends direct messages one at a time
	DefaultDMConcurrency = 1
	// MaxDMConcurrency caps parallel direct messages
	MaxDMConcurrency = 10
)

type UseCases struct {
	repo          interfaces.Repository
	discord       discord.Service
	notifier      interfaces.Notifier
	sysInfo       sysinfo.Service
	dmConcurrency int
	commandPrefix string

	Bot       *BotUseCase
	Broadcast *BroadcastUseCase
	Log       *LogUseCase
	Config    *ConfigUseCase
	Command   *CommandUseCase
}

type Option func(*UseCases)

// WithNotifier reports finished broadcasts, e.g. to Slack
func WithNotifier(notifier interfaces.Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = notifier
	}
}

func WithSystemInfo(svc sysinfo.Service) Option {
	return func(uc *UseCases) {
		uc.sysInfo = svc
	}
}

// WithDMConcurrency sets how many direct messages are in flight at once.
// Values are clamped to [1, MaxDMConcurrency].
func WithDMConcurrency(n int) Option {
	return func(uc *UseCases) {
		uc.dmConcurrency = n
	}
}

func WithCommandPrefix(prefix string) Option {
	return func(uc *UseCases) {
		uc.commandPrefix = prefix
	}
}

func New(repo interfaces.Repository, discordSvc discord.Service, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:          repo,
		discord:       discordSvc,
		dmConcurrency: DefaultDMConcurrency,
		commandPrefix: discord.DefaultCommandPrefix,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.dmConcurrency = max(1, min(uc.dmConcurrency, MaxDMConcurrency))
	if uc.commandPrefix == "" {
		uc.commandPrefix = discord.DefaultCommandPrefix
	}

	uc.Bot = NewBotUseCase(repo, discordSvc, uc.sysInfo)
	uc.Broadcast = NewBroadcastUseCase(repo, discordSvc, uc.notifier, uc.dmConcurrency)
	uc.Log = NewLogUseCase(repo)
	uc.Config = NewConfigUseCase(repo)
	uc.Command = NewCommandUseCase(repo, discordSvc, uc.Broadcast, uc.commandPrefix)

	return uc
}

// DMConcurrency returns the effective concurrency after clamping
func (uc *UseCases) DMConcurrency() int {
	return uc.dmConcurrency
}
