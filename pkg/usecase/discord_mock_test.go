package usecase_test

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/herald/pkg/domain/model"
	"github.com/secmon-lab/herald/pkg/service/discord"
)

// mockDiscordService is a function-field mock of discord.Service. Unset
// functions fail with ErrGatewayUnavailable.
type mockDiscordService struct {
	connectFn            func(ctx context.Context) error
	disconnectFn         func(ctx context.Context) error
	reconnectFn          func(ctx context.Context) error
	statusFn             func(ctx context.Context) (*model.BotStatus, error)
	guildsFn             func(ctx context.Context) ([]*model.Guild, error)
	activeGuildFn        func(ctx context.Context) (*model.Guild, error)
	rolesFn              func(ctx context.Context) ([]*model.Role, error)
	roleFn               func(ctx context.Context, roleID string) (*model.Role, error)
	roleMembersFn        func(ctx context.Context, roleID string) ([]*model.RoleMember, error)
	sendDirectMessageFn  func(ctx context.Context, userID, content string) error
	sendChannelMessageFn func(ctx context.Context, channelID, content string) error
	updatePresenceFn     func(ctx context.Context, text string) error

	mu        sync.Mutex
	dmCalls   []string
	replies   []string
	onCommand discord.CommandHandler
}

var _ discord.Service = &mockDiscordService{}

func unavailable() error {
	return goerr.Wrap(discord.ErrGatewayUnavailable, "no discord session")
}

func (m *mockDiscordService) Connect(ctx context.Context) error {
	if m.connectFn != nil {
		return m.connectFn(ctx)
	}
	return nil
}

func (m *mockDiscordService) Disconnect(ctx context.Context) error {
	if m.disconnectFn != nil {
		return m.disconnectFn(ctx)
	}
	return nil
}

func (m *mockDiscordService) Reconnect(ctx context.Context) error {
	if m.reconnectFn != nil {
		return m.reconnectFn(ctx)
	}
	return nil
}

func (m *mockDiscordService) Status(ctx context.Context) (*model.BotStatus, error) {
	if m.statusFn != nil {
		return m.statusFn(ctx)
	}
	return nil, unavailable()
}

func (m *mockDiscordService) Guilds(ctx context.Context) ([]*model.Guild, error) {
	if m.guildsFn != nil {
		return m.guildsFn(ctx)
	}
	return nil, unavailable()
}

func (m *mockDiscordService) ActiveGuild(ctx context.Context) (*model.Guild, error) {
	if m.activeGuildFn != nil {
		return m.activeGuildFn(ctx)
	}
	return nil, unavailable()
}

func (m *mockDiscordService) Roles(ctx context.Context) ([]*model.Role, error) {
	if m.rolesFn != nil {
		return m.rolesFn(ctx)
	}
	return nil, unavailable()
}

func (m *mockDiscordService) Role(ctx context.Context, roleID string) (*model.Role, error) {
	if m.roleFn != nil {
		return m.roleFn(ctx, roleID)
	}
	return nil, unavailable()
}

func (m *mockDiscordService) RoleMembers(ctx context.Context, roleID string) ([]*model.RoleMember, error) {
	if m.roleMembersFn != nil {
		return m.roleMembersFn(ctx, roleID)
	}
	return nil, unavailable()
}

func (m *mockDiscordService) SendDirectMessage(ctx context.Context, userID, content string) error {
	m.mu.Lock()
	m.dmCalls = append(m.dmCalls, userID)
	m.mu.Unlock()

	if m.sendDirectMessageFn != nil {
		return m.sendDirectMessageFn(ctx, userID, content)
	}
	return nil
}

func (m *mockDiscordService) SendChannelMessage(ctx context.Context, channelID, content string) error {
	m.mu.Lock()
	m.replies = append(m.replies, content)
	m.mu.Unlock()

	if m.sendChannelMessageFn != nil {
		return m.sendChannelMessageFn(ctx, channelID, content)
	}
	return nil
}

func (m *mockDiscordService) UpdatePresence(ctx context.Context, text string) error {
	if m.updatePresenceFn != nil {
		return m.updatePresenceFn(ctx, text)
	}
	return nil
}

func (m *mockDiscordService) OnCommand(handler discord.CommandHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onCommand = handler
}

func (m *mockDiscordService) sentDMs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.dmCalls...)
}

func (m *mockDiscordService) sentReplies() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.replies...)
}

func roleMembers(names ...string) []*model.RoleMember {
	members := make([]*model.RoleMember, len(names))
	for i, name := range names {
		members[i] = model.NewRoleMember("id-"+name, name, "0", "")
	}
	return members
}
