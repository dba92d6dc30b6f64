package model

// CommandMessage is a guild text message that starts with the command
// prefix. CanManageRoles is resolved by the gateway from the author's
// permissions in the channel.
type CommandMessage struct {
	GuildID        string
	ChannelID      string
	AuthorID       string
	AuthorName     string
	Content        string
	CanManageRoles bool
}
