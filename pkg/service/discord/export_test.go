package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// Export internal functions for testing
var (
	ToRoles         = toRoles
	ToRoleMembers   = toRoleMembers
	CanManageRoles  = canManageRoles
	ToPlatformError = toPlatformError
)

// NewWithSession returns a service already attached to sess, so state driven
// operations can be tested without a gateway connection
func NewWithSession(sess *discordgo.Session, opts ...Option) Service {
	c := newClient("test-token", opts...)
	c.session = sess
	c.ready = true
	c.connectedAt = time.Now()
	return c
}

// HandleMessageCreate feeds a message event to the service
func HandleMessageCreate(svc Service, s *discordgo.Session, m *discordgo.MessageCreate) {
	svc.(*client).handleMessageCreate(s, m)
}
