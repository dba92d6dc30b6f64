package model

import (
	"strings"
	"unicode"

	"github.com/secmon-lab/herald/pkg/domain/types"
)

// Guild is a Discord server (community) the bot has joined
type Guild struct {
	ID   string
	Name string
}

// Role is a live projection of a Discord role in the active guild
type Role struct {
	ID          string
	Name        string
	Position    int
	MemberCount int
}

// RoleMember is a guild member holding a role, as shown on the dashboard
type RoleMember struct {
	ID             string
	Username       string
	Tag            string
	AvatarInitials string
	Status         types.MemberStatus
}

// NewRoleMember builds a pending RoleMember. displayName is used for the
// initials and falls back to username when empty.
func NewRoleMember(id, username, discriminator, displayName string) *RoleMember {
	if displayName == "" {
		displayName = username
	}
	if discriminator == "" {
		discriminator = "0"
	}
	return &RoleMember{
		ID:             id,
		Username:       username,
		Tag:            discriminator,
		AvatarInitials: AvatarInitials(displayName),
		Status:         types.MemberStatusPending,
	}
}

// Copy returns a copy of the member
func (m *RoleMember) Copy() *RoleMember {
	if m == nil {
		return nil
	}
	copied := *m
	return &copied
}

// AvatarInitials returns up to two upper-case initials for name. Words are
// split on spaces, underscores, dots and dashes; a single word yields its
// first two letters.
func AvatarInitials(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == '_' || r == '.' || r == '-'
	})
	if len(words) == 0 {
		return "?"
	}

	var initials []rune
	if len(words) == 1 {
		for _, r := range words[0] {
			initials = append(initials, r)
			if len(initials) == 2 {
				break
			}
		}
	} else {
		for _, w := range words[:2] {
			for _, r := range w {
				initials = append(initials, r)
				break
			}
		}
	}
	return strings.ToUpper(string(initials))
}
