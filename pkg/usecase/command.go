package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/herald/pkg/domain/interfaces"
	"github.com/secmon-lab/herald/pkg/domain/model"
	"github.com/secmon-lab/herald/pkg/domain/types"
	"github.com/secmon-lab/herald/pkg/service/discord"
	"github.com/secmon-lab/herald/pkg/utils/logging"
)

// Text command names
const (
	CommandPing   = "ping"
	CommandDMRole = "dmrole"
)

const permissionDeniedReply = "You do not have permission to use this command."

// CommandUseCase handles prefixed text commands posted in the active guild
type CommandUseCase struct {
	repo      interfaces.Repository
	discord   discord.Service
	broadcast *BroadcastUseCase
	prefix    string
}

func NewCommandUseCase(repo interfaces.Repository, discordSvc discord.Service, broadcast *BroadcastUseCase, prefix string) *CommandUseCase {
	return &CommandUseCase{
		repo:      repo,
		discord:   discordSvc,
		broadcast: broadcast,
		prefix:    prefix,
	}
}

// Handle runs the command in msg and replies in the same channel. Unknown
// commands are ignored.
func (uc *CommandUseCase) Handle(ctx context.Context, msg *model.CommandMessage) error {
	name, args, ok := parseCommand(uc.prefix, msg.Content)
	if !ok {
		return nil
	}

	switch name {
	case CommandPing:
		uc.recordUsage(ctx, name, msg)
		return uc.ping(ctx, msg)
	case CommandDMRole:
		uc.recordUsage(ctx, name, msg)
		return uc.dmRole(ctx, msg, args)
	default:
		return nil
	}
}

func (uc *CommandUseCase) ping(ctx context.Context, msg *model.CommandMessage) error {
	status, err := uc.discord.Status(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to get status for ping")
	}
	return uc.reply(ctx, msg, "Pong! "+status.LatencyText())
}

func (uc *CommandUseCase) dmRole(ctx context.Context, msg *model.CommandMessage, args string) error {
	if !msg.CanManageRoles {
		return uc.reply(ctx, msg, permissionDeniedReply)
	}

	roleToken, message, _ := strings.Cut(args, " ")
	message = strings.TrimSpace(message)
	if roleToken == "" || message == "" {
		return uc.reply(ctx, msg, fmt.Sprintf("Usage: %s%s <role> <message>", uc.prefix, CommandDMRole))
	}

	roleID, err := uc.resolveRole(ctx, roleToken)
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			return uc.reply(ctx, msg, "Role not found: "+roleToken)
		}
		return goerr.Wrap(err, "failed to resolve role", goerr.V("token", roleToken))
	}

	result, err := uc.broadcast.Broadcast(ctx, roleID, message)
	if err != nil {
		logging.From(ctx).Warn("dmrole broadcast failed",
			"role_id", roleID,
			"error", err.Error())
		return uc.reply(ctx, msg, "Failed to send DMs: "+Reason(err))
	}

	return uc.reply(ctx, msg, result.Summary())
}

// resolveRole accepts a role mention, a role id or a case-insensitive name
func (uc *CommandUseCase) resolveRole(ctx context.Context, token string) (string, error) {
	if id, ok := strings.CutPrefix(token, "<@&"); ok {
		token = strings.TrimSuffix(id, ">")
	}

	roles, err := uc.discord.Roles(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to list roles")
	}

	for _, r := range roles {
		if r.ID == token {
			return r.ID, nil
		}
	}
	for _, r := range roles {
		if strings.EqualFold(r.Name, token) {
			return r.ID, nil
		}
	}

	return "", goerr.Wrap(ErrRoleNotFound, "no role matches", goerr.V("token", token))
}

func (uc *CommandUseCase) reply(ctx context.Context, msg *model.CommandMessage, text string) error {
	if err := uc.discord.SendChannelMessage(ctx, msg.ChannelID, text); err != nil {
		return goerr.Wrap(err, "failed to reply to command", goerr.V("channel_id", msg.ChannelID))
	}
	return nil
}

func (uc *CommandUseCase) recordUsage(ctx context.Context, name string, msg *model.CommandMessage) {
	appendActivity(ctx, uc.repo, types.LogTypeInfo,
		fmt.Sprintf("Command %s used by %s", name, msg.AuthorName))
}

// parseCommand splits "<prefix><name> <args>" into a lower-cased name and
// the trimmed argument string
func parseCommand(prefix, content string) (name, args string, ok bool) {
	rest, found := strings.CutPrefix(strings.TrimSpace(content), prefix)
	if !found || prefix == "" {
		return "", "", false
	}

	name, args, _ = strings.Cut(strings.TrimSpace(rest), " ")
	if name == "" {
		return "", "", false
	}
	return strings.ToLower(name), strings.TrimSpace(args), true
}
