package http_test

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/herald/pkg/domain/model"
	"github.com/secmon-lab/herald/pkg/service/discord"
)

// mockDiscordService fails every unset operation with ErrGatewayUnavailable,
// like a service that never connected
type mockDiscordService struct {
	reconnectFn         func(ctx context.Context) error
	statusFn            func(ctx context.Context) (*model.BotStatus, error)
	guildsFn            func(ctx context.Context) ([]*model.Guild, error)
	rolesFn             func(ctx context.Context) ([]*model.Role, error)
	roleMembersFn       func(ctx context.Context, roleID string) ([]*model.RoleMember, error)
	sendDirectMessageFn func(ctx context.Context, userID, content string) error
}

var _ discord.Service = &mockDiscordService{}

func errUnavailable() error {
	return goerr.Wrap(discord.ErrGatewayUnavailable, "no discord session")
}

func (m *mockDiscordService) Connect(ctx context.Context) error    { return nil }
func (m *mockDiscordService) Disconnect(ctx context.Context) error { return nil }

func (m *mockDiscordService) Reconnect(ctx context.Context) error {
	if m.reconnectFn != nil {
		return m.reconnectFn(ctx)
	}
	return errUnavailable()
}

func (m *mockDiscordService) Status(ctx context.Context) (*model.BotStatus, error) {
	if m.statusFn != nil {
		return m.statusFn(ctx)
	}
	return nil, errUnavailable()
}

func (m *mockDiscordService) Guilds(ctx context.Context) ([]*model.Guild, error) {
	if m.guildsFn != nil {
		return m.guildsFn(ctx)
	}
	return nil, errUnavailable()
}

func (m *mockDiscordService) ActiveGuild(ctx context.Context) (*model.Guild, error) {
	return nil, errUnavailable()
}

func (m *mockDiscordService) Roles(ctx context.Context) ([]*model.Role, error) {
	if m.rolesFn != nil {
		return m.rolesFn(ctx)
	}
	return nil, errUnavailable()
}

func (m *mockDiscordService) Role(ctx context.Context, roleID string) (*model.Role, error) {
	return nil, errUnavailable()
}

func (m *mockDiscordService) RoleMembers(ctx context.Context, roleID string) ([]*model.RoleMember, error) {
	if m.roleMembersFn != nil {
		return m.roleMembersFn(ctx, roleID)
	}
	return nil, errUnavailable()
}

func (m *mockDiscordService) SendDirectMessage(ctx context.Context, userID, content string) error {
	if m.sendDirectMessageFn != nil {
		return m.sendDirectMessageFn(ctx, userID, content)
	}
	return errUnavailable()
}

func (m *mockDiscordService) SendChannelMessage(ctx context.Context, channelID, content string) error {
	return errUnavailable()
}

func (m *mockDiscordService) UpdatePresence(ctx context.Context, text string) error {
	return errUnavailable()
}

func (m *mockDiscordService) OnCommand(handler discord.CommandHandler) {}
