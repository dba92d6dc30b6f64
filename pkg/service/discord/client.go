package discord

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/herald/pkg/domain/interfaces"
	"github.com/secmon-lab/herald/pkg/domain/model"
	"github.com/secmon-lab/herald/pkg/domain/types"
	"github.com/secmon-lab/herald/pkg/utils/async"
	"github.com/secmon-lab/herald/pkg/utils/logging"
)

const (
	// DefaultConnectTimeout bounds how long Connect waits for the Ready event
	DefaultConnectTimeout = 30 * time.Second
	// DefaultCommandPrefix is the prefix of text commands
	DefaultCommandPrefix = "!"

	membersPageSize = 1000

	intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent
)

// client implements Service on top of a discordgo session
type client struct {
	token          string
	guildID        string
	commandPrefix  string
	connectTimeout time.Duration
	logRepo        interfaces.LogRepository

	// lifecycle serializes Connect and Disconnect
	lifecycle sync.Mutex

	mu          sync.RWMutex
	session     *discordgo.Session
	ready       bool
	connectedAt time.Time
	onCommand   CommandHandler
}

// Option is a functional option for client configuration
type Option func(*client)

// WithGuildID selects the active guild. Without it the first joined guild is used.
func WithGuildID(guildID string) Option {
	return func(c *client) {
		c.guildID = guildID
	}
}

// WithCommandPrefix sets the prefix that marks a message as a command
func WithCommandPrefix(prefix string) Option {
	return func(c *client) {
		c.commandPrefix = prefix
	}
}

// WithConnectTimeout sets how long Connect waits for Discord to become ready
func WithConnectTimeout(timeout time.Duration) Option {
	return func(c *client) {
		c.connectTimeout = timeout
	}
}

// WithLogRepository records connection events in the activity log
func WithLogRepository(repo interfaces.LogRepository) Option {
	return func(c *client) {
		c.logRepo = repo
	}
}

// New creates a Discord service for the bot token. It does not connect.
func New(token string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Discord bot token is required")
	}
	return newClient(token, opts...), nil
}

func newClient(token string, opts ...Option) *client {
	c := &client{
		token:          token,
		commandPrefix:  DefaultCommandPrefix,
		connectTimeout: DefaultConnectTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.connectTimeout <= 0 {
		c.connectTimeout = DefaultConnectTimeout
	}
	return c
}

func (c *client) Connect(ctx context.Context) error {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	c.mu.RLock()
	connected := c.session != nil
	c.mu.RUnlock()
	if connected {
		return nil
	}

	sess, err := discordgo.New("Bot " + c.token)
	if err != nil {
		return goerr.Wrap(err, "failed to create discord session")
	}
	sess.Identify.Intents = intents
	sess.State.TrackPresences = false
	sess.State.TrackVoice = false

	readyCh := make(chan *discordgo.Ready, 1)
	sess.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		c.setReady(s, true)
		select {
		case readyCh <- r:
		default:
		}
	})
	sess.AddHandler(func(s *discordgo.Session, _ *discordgo.Resumed) {
		c.setReady(s, true)
	})
	sess.AddHandler(func(s *discordgo.Session, _ *discordgo.Disconnect) {
		c.setReady(s, false)
	})
	sess.AddHandler(c.handleMessageCreate)

	if err := sess.Open(); err != nil {
		return goerr.Wrap(toPlatformError(err), "failed to open discord session")
	}

	waitCtx, cancel := context.WithTimeout(ctx, c.connectTimeout)
	defer cancel()

	select {
	case r := <-readyCh:
		c.mu.Lock()
		c.session = sess
		c.ready = true
		c.connectedAt = time.Now()
		c.mu.Unlock()

		username := ""
		if r.User != nil {
			username = r.User.Username
		}
		logging.From(ctx).Info("Discord session ready",
			"user", username,
			"guilds", len(r.Guilds))
		c.appendLog(ctx, types.LogTypeSystem, "Bot connected as "+username)
		return nil

	case <-waitCtx.Done():
		if err := sess.Close(); err != nil {
			logging.From(ctx).Warn("failed to close discord session after timeout", "error", err.Error())
		}
		return goerr.Wrap(waitCtx.Err(), "discord session did not become ready",
			goerr.V("timeout", c.connectTimeout.String()))
	}
}

func (c *client) Disconnect(ctx context.Context) error {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	c.mu.Lock()
	sess := c.session
	c.session = nil
	c.ready = false
	c.mu.Unlock()

	if sess == nil {
		return nil
	}

	if err := sess.Close(); err != nil {
		return goerr.Wrap(err, "failed to close discord session")
	}

	c.appendLog(ctx, types.LogTypeSystem, "Bot disconnected")
	return nil
}

func (c *client) Reconnect(ctx context.Context) error {
	if err := c.Disconnect(ctx); err != nil {
		// The session reference is already dropped; a new one can still be opened.
		logging.From(ctx).Warn("discord disconnect failed during reconnect", "error", err.Error())
	}

	if err := c.Connect(ctx); err != nil {
		return goerr.Wrap(err, "failed to reconnect discord session")
	}
	return nil
}

func (c *client) Status(ctx context.Context) (*model.BotStatus, error) {
	sess, err := c.liveSession()
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	ready := c.ready
	connectedAt := c.connectedAt
	c.mu.RUnlock()

	status := &model.BotStatus{
		State: types.BotStateOffline,
	}
	if ready {
		status.State = types.BotStateOnline
		status.Uptime = time.Since(connectedAt)
		status.Latency = sess.HeartbeatLatency()
	}
	if g, err := c.activeGuild(sess); err == nil {
		status.ServerName = g.Name
	}

	return status, nil
}

func (c *client) Guilds(ctx context.Context) ([]*model.Guild, error) {
	sess, err := c.liveSession()
	if err != nil {
		return nil, err
	}

	sess.State.RLock()
	defer sess.State.RUnlock()

	guilds := make([]*model.Guild, 0, len(sess.State.Guilds))
	for _, g := range sess.State.Guilds {
		guilds = append(guilds, toGuild(g))
	}
	return guilds, nil
}

func (c *client) ActiveGuild(ctx context.Context) (*model.Guild, error) {
	sess, err := c.liveSession()
	if err != nil {
		return nil, err
	}
	return c.activeGuild(sess)
}

func (c *client) Roles(ctx context.Context) ([]*model.Role, error) {
	sess, err := c.liveSession()
	if err != nil {
		return nil, err
	}

	guild, err := c.activeGuild(sess)
	if err != nil {
		return nil, err
	}

	roles, err := sess.GuildRoles(guild.ID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, goerr.Wrap(toPlatformError(err), "failed to get guild roles", goerr.V("guild_id", guild.ID))
	}

	members, err := c.guildMembers(ctx, sess, guild.ID)
	if err != nil {
		return nil, err
	}

	return toRoles(guild.ID, roles, members), nil
}

// Role returns the role without MemberCount
func (c *client) Role(ctx context.Context, roleID string) (*model.Role, error) {
	sess, err := c.liveSession()
	if err != nil {
		return nil, err
	}

	guild, err := c.activeGuild(sess)
	if err != nil {
		return nil, err
	}

	roles, err := sess.GuildRoles(guild.ID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, goerr.Wrap(toPlatformError(err), "failed to get guild roles", goerr.V("guild_id", guild.ID))
	}

	r := findRole(roles, roleID)
	if r == nil {
		return nil, goerr.Wrap(ErrRoleNotFound, "role does not exist in active guild",
			goerr.V("guild_id", guild.ID), goerr.V("role_id", roleID))
	}

	return &model.Role{
		ID:       r.ID,
		Name:     r.Name,
		Position: r.Position,
	}, nil
}

func (c *client) RoleMembers(ctx context.Context, roleID string) ([]*model.RoleMember, error) {
	sess, err := c.liveSession()
	if err != nil {
		return nil, err
	}

	guild, err := c.activeGuild(sess)
	if err != nil {
		return nil, err
	}

	roles, err := sess.GuildRoles(guild.ID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, goerr.Wrap(toPlatformError(err), "failed to get guild roles", goerr.V("guild_id", guild.ID))
	}
	if findRole(roles, roleID) == nil {
		return nil, goerr.Wrap(ErrRoleNotFound, "role does not exist in active guild",
			goerr.V("guild_id", guild.ID), goerr.V("role_id", roleID))
	}

	members, err := c.guildMembers(ctx, sess, guild.ID)
	if err != nil {
		return nil, err
	}

	return toRoleMembers(roleID, members), nil
}

func (c *client) SendDirectMessage(ctx context.Context, userID, content string) error {
	sess, err := c.liveSession()
	if err != nil {
		return err
	}

	channel, err := sess.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return goerr.Wrap(toPlatformError(err), "failed to open DM channel", goerr.V("user_id", userID))
	}

	if _, err := sess.ChannelMessageSend(channel.ID, content, discordgo.WithContext(ctx)); err != nil {
		return goerr.Wrap(toPlatformError(err), "failed to send direct message",
			goerr.V("user_id", userID), goerr.V("channel_id", channel.ID))
	}
	return nil
}

func (c *client) SendChannelMessage(ctx context.Context, channelID, content string) error {
	sess, err := c.liveSession()
	if err != nil {
		return err
	}

	if _, err := sess.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx)); err != nil {
		return goerr.Wrap(toPlatformError(err), "failed to send channel message", goerr.V("channel_id", channelID))
	}
	return nil
}

func (c *client) UpdatePresence(ctx context.Context, text string) error {
	sess, err := c.liveSession()
	if err != nil {
		return err
	}

	if err := sess.UpdateGameStatus(0, text); err != nil {
		return goerr.Wrap(toPlatformError(err), "failed to update presence", goerr.V("text", text))
	}
	return nil
}

func (c *client) OnCommand(handler CommandHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onCommand = handler
}

func (c *client) liveSession() (*discordgo.Session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil, goerr.Wrap(ErrGatewayUnavailable, "no discord session")
	}
	return c.session, nil
}

// setReady ignores events from sessions that are no longer current
func (c *client) setReady(sess *discordgo.Session, ready bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == sess {
		c.ready = ready
	}
}

func (c *client) activeGuild(sess *discordgo.Session) (*model.Guild, error) {
	if c.guildID != "" {
		g, err := sess.State.Guild(c.guildID)
		if err != nil {
			return nil, goerr.Wrap(ErrNoGuild, "configured guild is not joined", goerr.V("guild_id", c.guildID))
		}
		return toGuild(g), nil
	}

	sess.State.RLock()
	defer sess.State.RUnlock()
	if len(sess.State.Guilds) == 0 {
		return nil, goerr.Wrap(ErrNoGuild, "bot has not joined any guild")
	}
	return toGuild(sess.State.Guilds[0]), nil
}

func (c *client) guildMembers(ctx context.Context, sess *discordgo.Session, guildID string) ([]*discordgo.Member, error) {
	var members []*discordgo.Member
	after := ""
	for {
		page, err := sess.GuildMembers(guildID, after, membersPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, goerr.Wrap(toPlatformError(err), "failed to list guild members",
				goerr.V("guild_id", guildID), goerr.V("after", after))
		}
		members = append(members, page...)

		if len(page) < membersPageSize || page[len(page)-1].User == nil {
			break
		}
		after = page[len(page)-1].User.ID
	}
	return members, nil
}

func (c *client) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}
	if !strings.HasPrefix(m.Content, c.commandPrefix) {
		return
	}

	c.mu.RLock()
	handler := c.onCommand
	c.mu.RUnlock()
	if handler == nil {
		return
	}

	active, err := c.activeGuild(s)
	if err != nil || active.ID != m.GuildID {
		return
	}

	var memberRoles []string
	if m.Member != nil {
		memberRoles = m.Member.Roles
	}

	msg := &model.CommandMessage{
		GuildID:    m.GuildID,
		ChannelID:  m.ChannelID,
		AuthorID:   m.Author.ID,
		AuthorName: m.Author.Username,
		Content:    m.Content,
	}

	async.Dispatch(context.Background(), "discord_command", func(ctx context.Context) error {
		msg.CanManageRoles = c.authorCanManageRoles(ctx, s, m.GuildID, m.Author.ID, memberRoles)
		handler(ctx, msg)
		return nil
	})
}

// authorCanManageRoles prefers the state cache and falls back to the REST API
func (c *client) authorCanManageRoles(ctx context.Context, s *discordgo.Session, guildID, userID string, memberRoles []string) bool {
	var ownerID string
	var roles []*discordgo.Role

	if g, err := s.State.Guild(guildID); err == nil {
		s.State.RLock()
		ownerID = g.OwnerID
		roles = append(roles, g.Roles...)
		s.State.RUnlock()
	}

	if len(roles) == 0 {
		fetched, err := s.GuildRoles(guildID, discordgo.WithContext(ctx))
		if err != nil {
			logging.From(ctx).Warn("failed to fetch roles for permission check",
				"guild_id", guildID, "error", err.Error())
			return false
		}
		roles = fetched
	}

	return canManageRoles(guildID, ownerID, roles, userID, memberRoles)
}

func (c *client) appendLog(ctx context.Context, logType types.LogType, message string) {
	if c.logRepo == nil {
		return
	}
	if _, err := c.logRepo.Append(ctx, logType, message); err != nil {
		logging.From(ctx).Warn("failed to append activity log", "error", err.Error())
	}
}
