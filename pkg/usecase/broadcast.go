package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/herald/pkg/domain/interfaces"
	"github.com/secmon-lab/herald/pkg/domain/model"
	"github.com/secmon-lab/herald/pkg/domain/types"
	"github.com/secmon-lab/herald/pkg/service/discord"
	"github.com/secmon-lab/herald/pkg/utils/async"
	"github.com/secmon-lab/herald/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// BroadcastUseCase sends one message to every member of a role
type BroadcastUseCase struct {
	repo        interfaces.Repository
	discord     discord.Service
	notifier    interfaces.Notifier
	concurrency int
}

func NewBroadcastUseCase(repo interfaces.Repository, discordSvc discord.Service, notifier interfaces.Notifier, concurrency int) *BroadcastUseCase {
	return &BroadcastUseCase{
		repo:        repo,
		discord:     discordSvc,
		notifier:    notifier,
		concurrency: max(1, concurrency),
	}
}

// Broadcast delivers message to each member holding roleID. Every resolved
// member gets exactly one attempt and one activity log entry; individual
// failures are counted, never returned. An error is returned only when the
// members cannot be resolved, in which case nothing is logged.
func (uc *BroadcastUseCase) Broadcast(ctx context.Context, roleID, message string) (*model.BroadcastResult, error) {
	roleID = strings.TrimSpace(roleID)
	if roleID == "" || strings.TrimSpace(message) == "" {
		return nil, goerr.Wrap(ErrValidation, "role id and message are required")
	}

	members, err := uc.discord.RoleMembers(ctx, roleID)
	if err != nil {
		if errors.Is(err, discord.ErrRoleNotFound) {
			return nil, goerr.Wrap(ErrRoleNotFound, "failed to resolve role members", goerr.V(RoleIDKey, roleID))
		}
		return nil, goerr.Wrap(err, "failed to resolve role members", goerr.V(RoleIDKey, roleID))
	}

	result := &model.BroadcastResult{
		RoleID:  roleID,
		Members: members,
	}
	if role, err := uc.discord.Role(ctx, roleID); err == nil {
		result.RoleName = role.Name
	} else {
		logging.From(ctx).Debug("role name lookup failed", "role_id", roleID, "error", err.Error())
	}

	logger := logging.From(ctx)
	logger.Info("Starting DM broadcast",
		"role_id", roleID,
		"members", len(members),
		"concurrency", uc.concurrency)
	startTime := time.Now()

	// Each goroutine writes only to its own member, so no locking is needed.
	var eg errgroup.Group
	eg.SetLimit(uc.concurrency)
	for _, m := range members {
		eg.Go(func() error {
			m.Status = uc.deliver(ctx, m, message)
			return nil
		})
	}
	_ = eg.Wait()

	result.Tally()

	logger.Info("DM broadcast finished",
		"role_id", roleID,
		"sent", result.SuccessCount,
		"failed", result.FailedCount,
		"duration", time.Since(startTime).String())

	uc.notify(ctx, result)

	return result, nil
}

// deliver makes the single attempt for m and records its outcome. A
// cancelled ctx fails members that were not attempted yet.
func (uc *BroadcastUseCase) deliver(ctx context.Context, m *model.RoleMember, message string) types.MemberStatus {
	err := ctx.Err()
	if err == nil {
		err = uc.discord.SendDirectMessage(ctx, m.ID, message)
	}

	if err != nil {
		reason := Reason(err)
		logging.From(ctx).Warn("Failed to send DM",
			"user_id", m.ID,
			"username", m.Username,
			"reason", reason)
		appendActivity(ctx, uc.repo, types.LogTypeError,
			fmt.Sprintf("Failed to send DM to %s: %s", m.Username, reason))
		return types.MemberStatusFailed
	}

	appendActivity(ctx, uc.repo, types.LogTypeSuccess, "Sent DM to "+m.Username)
	return types.MemberStatusSent
}

func (uc *BroadcastUseCase) notify(ctx context.Context, result *model.BroadcastResult) {
	if uc.notifier == nil {
		return
	}

	snapshot := &model.BroadcastResult{
		RoleID:       result.RoleID,
		RoleName:     result.RoleName,
		SuccessCount: result.SuccessCount,
		FailedCount:  result.FailedCount,
	}
	for _, m := range result.Members {
		snapshot.Members = append(snapshot.Members, m.Copy())
	}

	async.Dispatch(ctx, "broadcast_notify", func(ctx context.Context) error {
		return uc.notifier.NotifyBroadcast(ctx, snapshot)
	})
}
