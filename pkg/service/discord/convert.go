package discord

import (
	"errors"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/secmon-lab/herald/pkg/domain/model"
)

func toGuild(g *discordgo.Guild) *model.Guild {
	return &model.Guild{
		ID:   g.ID,
		Name: g.Name,
	}
}

// toRoles converts guild roles and counts their non-bot holders. The
// @everyone role shares the guild id.
func toRoles(guildID string, roles []*discordgo.Role, members []*discordgo.Member) []*model.Role {
	counts := make(map[string]int)
	for _, m := range members {
		if m.User == nil || m.User.Bot {
			continue
		}
		for _, id := range m.Roles {
			counts[id]++
		}
	}

	result := make([]*model.Role, 0, len(roles))
	for _, r := range roles {
		if r.ID == guildID || r.Managed {
			continue
		}
		result = append(result, &model.Role{
			ID:          r.ID,
			Name:        r.Name,
			Position:    r.Position,
			MemberCount: counts[r.ID],
		})
	}

	slices.SortStableFunc(result, func(a, b *model.Role) int {
		if a.Position != b.Position {
			return b.Position - a.Position
		}
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

func findRole(roles []*discordgo.Role, roleID string) *discordgo.Role {
	for _, r := range roles {
		if r.ID == roleID {
			return r
		}
	}
	return nil
}

func toRoleMembers(roleID string, members []*discordgo.Member) []*model.RoleMember {
	var result []*model.RoleMember
	for _, m := range members {
		if m.User == nil || m.User.Bot {
			continue
		}
		if !slices.Contains(m.Roles, roleID) {
			continue
		}
		result = append(result, model.NewRoleMember(m.User.ID, m.User.Username, m.User.Discriminator, displayName(m)))
	}
	return result
}

func displayName(m *discordgo.Member) string {
	if m.Nick != "" {
		return m.Nick
	}
	if m.User == nil {
		return ""
	}
	if m.User.GlobalName != "" {
		return m.User.GlobalName
	}
	return m.User.Username
}

// canManageRoles reports whether the member is the guild owner or holds a
// role granting Administrator or Manage Roles. @everyone always applies.
func canManageRoles(guildID, ownerID string, roles []*discordgo.Role, userID string, memberRoles []string) bool {
	if ownerID != "" && ownerID == userID {
		return true
	}

	var perms int64
	for _, r := range roles {
		if r.ID == guildID || slices.Contains(memberRoles, r.ID) {
			perms |= r.Permissions
		}
	}
	return perms&(discordgo.PermissionAdministrator|discordgo.PermissionManageRoles) != 0
}

// toPlatformError turns a discordgo failure into *PlatformError so callers
// can report the platform's own reason
func toPlatformError(err error) error {
	if err == nil {
		return nil
	}

	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		pe := &PlatformError{}
		if restErr.Message != nil {
			pe.Code = restErr.Message.Code
			pe.Reason = restErr.Message.Message
		}
		if restErr.Response != nil {
			pe.StatusCode = restErr.Response.StatusCode
		}
		if pe.Reason == "" {
			pe.Reason = restErr.Error()
		}
		return pe
	}

	return &PlatformError{Reason: err.Error()}
}
