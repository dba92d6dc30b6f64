package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/herald/pkg/domain/interfaces"
	"github.com/secmon-lab/herald/pkg/domain/model"
	"github.com/secmon-lab/herald/pkg/domain/types"
	"github.com/secmon-lab/herald/pkg/service/discord"
	"github.com/secmon-lab/herald/pkg/service/sysinfo"
)

// BotUseCase exposes the gateway state and its read operations
type BotUseCase struct {
	repo    interfaces.Repository
	discord discord.Service
	sysInfo sysinfo.Service
}

func NewBotUseCase(repo interfaces.Repository, discordSvc discord.Service, sysInfo sysinfo.Service) *BotUseCase {
	return &BotUseCase{
		repo:    repo,
		discord: discordSvc,
		sysInfo: sysInfo,
	}
}

// Status fails with discord.ErrGatewayUnavailable when there is no session.
// A session that is reconnecting reports offline.
func (uc *BotUseCase) Status(ctx context.Context) (*model.BotStatus, error) {
	status, err := uc.discord.Status(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get bot status")
	}
	return status, nil
}

// Restart reconnects the gateway and records the attempt in the activity log
func (uc *BotUseCase) Restart(ctx context.Context) error {
	appendActivity(ctx, uc.repo, types.LogTypeSystem, "Bot restart requested")

	if err := uc.discord.Reconnect(ctx); err != nil {
		appendActivity(ctx, uc.repo, types.LogTypeSystem, "Bot restart failed: "+Reason(err))
		return goerr.Wrap(err, "failed to restart bot")
	}

	appendActivity(ctx, uc.repo, types.LogTypeSystem, "Bot restarted")
	return nil
}

func (uc *BotUseCase) Servers(ctx context.Context) ([]*model.Guild, error) {
	guilds, err := uc.discord.Guilds(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get servers")
	}
	return guilds, nil
}

func (uc *BotUseCase) Roles(ctx context.Context) ([]*model.Role, error) {
	roles, err := uc.discord.Roles(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get roles")
	}
	return roles, nil
}

// RoleMembers lists the members of roleID, all with pending status
func (uc *BotUseCase) RoleMembers(ctx context.Context, roleID string) ([]*model.RoleMember, error) {
	roleID = strings.TrimSpace(roleID)
	if roleID == "" {
		return nil, goerr.Wrap(ErrValidation, "role id is required")
	}

	members, err := uc.discord.RoleMembers(ctx, roleID)
	if err != nil {
		if errors.Is(err, discord.ErrRoleNotFound) {
			return nil, goerr.Wrap(ErrRoleNotFound, "failed to get role members", goerr.V(RoleIDKey, roleID))
		}
		return nil, goerr.Wrap(err, "failed to get role members", goerr.V(RoleIDKey, roleID))
	}
	return members, nil
}

// SystemInfo works without a gateway connection
func (uc *BotUseCase) SystemInfo(ctx context.Context) (*model.SystemInfo, error) {
	if uc.sysInfo == nil {
		return nil, goerr.Wrap(ErrSystemInfoUnavailable, "failed to get system info")
	}

	info, err := uc.sysInfo.Collect(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get system info")
	}
	return info, nil
}
