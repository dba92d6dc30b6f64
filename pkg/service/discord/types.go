package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/secmon-lab/herald/pkg/domain/model"
)

// Service is the gateway to the Discord platform. Every operation except
// Connect fails with ErrGatewayUnavailable while no session is open.
type Service interface {
	// Connect opens the gateway session and blocks until Discord reports
	// ready, ctx is done, or the connect timeout elapses. Connecting an
	// already connected service is a no-op.
	Connect(ctx context.Context) error

	// Disconnect closes the session. Disconnecting twice is a no-op.
	Disconnect(ctx context.Context) error

	// Reconnect tears the session down and opens a new one. It returns once
	// the new session is ready or has failed.
	Reconnect(ctx context.Context) error

	// Status reports connection state, uptime, active guild and latency
	Status(ctx context.Context) (*model.BotStatus, error)

	// Guilds returns every guild the bot has joined
	Guilds(ctx context.Context) ([]*model.Guild, error)

	// ActiveGuild returns the configured guild, or the first joined guild
	ActiveGuild(ctx context.Context) (*model.Guild, error)

	// Roles returns the assignable roles of the active guild, highest first.
	// @everyone and integration managed roles are excluded.
	Roles(ctx context.Context) ([]*model.Role, error)

	// Role looks up a single role of the active guild
	Role(ctx context.Context, roleID string) (*model.Role, error)

	// RoleMembers returns the non-bot members holding roleID. It fails with
	// ErrRoleNotFound if the active guild has no such role.
	RoleMembers(ctx context.Context, roleID string) ([]*model.RoleMember, error)

	// SendDirectMessage opens a DM channel with the user and posts content
	SendDirectMessage(ctx context.Context, userID, content string) error

	// SendChannelMessage posts content to a guild channel
	SendChannelMessage(ctx context.Context, channelID, content string) error

	// UpdatePresence sets the "Playing ..." status of the bot
	UpdatePresence(ctx context.Context, text string) error

	// OnCommand registers the callback for prefixed messages in the active
	// guild. Callbacks run asynchronously; a later call replaces the handler.
	OnCommand(handler CommandHandler)
}

// CommandHandler receives prefixed guild messages
type CommandHandler func(ctx context.Context, msg *model.CommandMessage)

var (
	// ErrGatewayUnavailable means there is no live session
	ErrGatewayUnavailable = errors.New("discord gateway is not connected")

	// ErrRoleNotFound means the role id does not exist in the active guild
	ErrRoleNotFound = errors.New("role not found")

	// ErrNoGuild means the bot has not joined any guild, or the configured
	// guild is not among the joined ones
	ErrNoGuild = errors.New("no active guild")
)

// PlatformError is a request Discord rejected or that never reached it.
// Reason is the platform supplied message, e.g. "Cannot send messages to this user".
type PlatformError struct {
	Code       int
	StatusCode int
	Reason     string
}

func (e *PlatformError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("discord error %d: %s", e.Code, e.Reason)
	}
	return e.Reason
}

// Reason extracts the operator facing reason from err: the platform message
// for a PlatformError, or the error text otherwise.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var pe *PlatformError
	if errors.As(err, &pe) {
		return pe.Reason
	}
	switch {
	case errors.Is(err, ErrGatewayUnavailable):
		return ErrGatewayUnavailable.Error()
	case errors.Is(err, ErrRoleNotFound):
		return ErrRoleNotFound.Error()
	case errors.Is(err, ErrNoGuild):
		return ErrNoGuild.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "request cancelled"
	}
	return err.Error()
}
