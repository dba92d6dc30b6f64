package usecase

import (
	"errors"

	"github.com/secmon-lab/herald/pkg/service/discord"
)

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrRoleNotFound = errors.New("role not found")

	// Input errors
	ErrValidation = errors.New("validation error")

	// Dependency errors
	ErrSystemInfoUnavailable = errors.New("system info is not configured")
)

// Context keys for error values
const (
	RoleIDKey = "role_id"
	UserIDKey = "user_id"
)

// Reason renders err as the short phrase shown to operators, e.g. after
// "Failed to send DMs: "
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "role id and message are required"
	case errors.Is(err, ErrRoleNotFound):
		return ErrRoleNotFound.Error()
	}
	return discord.Reason(err)
}
