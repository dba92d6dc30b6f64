package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/herald/pkg/domain/model"
	"github.com/secmon-lab/herald/pkg/domain/types"
	"github.com/secmon-lab/herald/pkg/repository/memory"
	"github.com/secmon-lab/herald/pkg/usecase"
)

func TestParseCommand(t *testing.T) {
	testCases := []struct {
		content string
		name    string
		args    string
		ok      bool
	}{
		{content: "!ping", name: "ping", ok: true},
		{content: "  !PING  ", name: "ping", ok: true},
		{content: "!dmrole <@&123> hello  there", name: "dmrole", args: "<@&123> hello  there", ok: true},
		{content: "ping", ok: false},
		{content: "!", ok: false},
		{content: "! ping", name: "ping", ok: true},
	}

	for _, tc := range testCases {
		t.Run(tc.content, func(t *testing.T) {
			name, args, ok := usecase.ParseCommand("!", tc.content)
			gt.Value(t, ok).Equal(tc.ok)
			gt.Value(t, name).Equal(tc.name)
			gt.Value(t, args).Equal(tc.args)
		})
	}
}

func newCommandFixture() (*mockDiscordService, *memory.Memory) {
	svc := &mockDiscordService{
		statusFn: func(ctx context.Context) (*model.BotStatus, error) {
			return &model.BotStatus{State: types.BotStateOnline, Latency: 35 * time.Millisecond}, nil
		},
		rolesFn: func(ctx context.Context) ([]*model.Role, error) {
			return []*model.Role{
				{ID: "111", Name: "Moderators"},
				{ID: "222", Name: "Members"},
			}, nil
		},
		roleFn: func(ctx context.Context, roleID string) (*model.Role, error) {
			return &model.Role{ID: roleID, Name: "Moderators"}, nil
		},
		roleMembersFn: func(ctx context.Context, roleID string) ([]*model.RoleMember, error) {
			if roleID == "111" {
				return roleMembers("alice", "bob"), nil
			}
			return roleMembers("carol"), nil
		},
	}
	return svc, memory.New()
}

func TestCommandPing(t *testing.T) {
	ctx := context.Background()
	svc, repo := newCommandFixture()
	uc := usecase.New(repo, svc)

	gt.NoError(t, uc.Command.Handle(ctx, &model.CommandMessage{
		ChannelID:  "c1",
		AuthorName: "carol",
		Content:    "!ping",
	})).Required()

	gt.Value(t, svc.sentReplies()).Equal([]string{"Pong! 35ms"})

	entries, err := repo.Log().List(ctx, types.LogTypeInfo)
	gt.NoError(t, err).Required()
	gt.Array(t, entries).Length(1).Required()
	gt.Value(t, entries[0].Message).Equal("Command ping used by carol")
}

func TestCommandDMRole(t *testing.T) {
	ctx := context.Background()

	t.Run("broadcasts to role mention", func(t *testing.T) {
		svc, repo := newCommandFixture()
		uc := usecase.New(repo, svc)

		gt.NoError(t, uc.Command.Handle(ctx, &model.CommandMessage{
			ChannelID:      "c1",
			AuthorName:     "admin",
			Content:        "!dmrole <@&111> Meeting at 5pm",
			CanManageRoles: true,
		})).Required()

		gt.Value(t, svc.sentReplies()).Equal([]string{"Successfully sent DM to 2 members. 0 failed."})
		gt.Array(t, svc.sentDMs()).Length(2)

		successes, err := repo.Log().List(ctx, types.LogTypeSuccess)
		gt.NoError(t, err).Required()
		gt.Array(t, successes).Length(2)
	})

	t.Run("resolves role by name", func(t *testing.T) {
		svc, repo := newCommandFixture()
		uc := usecase.New(repo, svc)

		gt.NoError(t, uc.Command.Handle(ctx, &model.CommandMessage{
			ChannelID:      "c1",
			AuthorName:     "admin",
			Content:        "!dmrole members hi",
			CanManageRoles: true,
		})).Required()

		gt.Value(t, svc.sentDMs()).Equal([]string{"id-carol"})
	})

	t.Run("denies members without permission", func(t *testing.T) {
		svc, repo := newCommandFixture()
		uc := usecase.New(repo, svc)

		gt.NoError(t, uc.Command.Handle(ctx, &model.CommandMessage{
			ChannelID:  "c1",
			AuthorName: "mallory",
			Content:    "!dmrole 111 spam",
		})).Required()

		gt.Value(t, svc.sentReplies()).Equal([]string{"You do not have permission to use this command."})
		gt.Array(t, svc.sentDMs()).Length(0)

		entries, err := repo.Log().List(ctx, "")
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(1).Required()
		gt.Value(t, entries[0].Message).Equal("Command dmrole used by mallory")
	})

	t.Run("usage on missing message", func(t *testing.T) {
		svc, repo := newCommandFixture()
		uc := usecase.New(repo, svc, usecase.WithCommandPrefix("?"))

		gt.NoError(t, uc.Command.Handle(ctx, &model.CommandMessage{
			ChannelID:      "c1",
			AuthorName:     "admin",
			Content:        "?dmrole 111",
			CanManageRoles: true,
		})).Required()

		gt.Value(t, svc.sentReplies()).Equal([]string{"Usage: ?dmrole <role> <message>"})
	})

	t.Run("unknown role", func(t *testing.T) {
		svc, repo := newCommandFixture()
		uc := usecase.New(repo, svc)

		gt.NoError(t, uc.Command.Handle(ctx, &model.CommandMessage{
			ChannelID:      "c1",
			AuthorName:     "admin",
			Content:        "!dmrole Nobody hello",
			CanManageRoles: true,
		})).Required()

		gt.Value(t, svc.sentReplies()).Equal([]string{"Role not found: Nobody"})
		gt.Array(t, svc.sentDMs()).Length(0)
	})
}

func TestCommandIgnoresUnknown(t *testing.T) {
	ctx := context.Background()
	svc, repo := newCommandFixture()
	uc := usecase.New(repo, svc)

	gt.NoError(t, uc.Command.Handle(ctx, &model.CommandMessage{ChannelID: "c1", Content: "!help"})).Required()
	gt.NoError(t, uc.Command.Handle(ctx, &model.CommandMessage{ChannelID: "c1", Content: "hello"})).Required()

	gt.Array(t, svc.sentReplies()).Length(0)
	gt.Number(t, repo.Log().Count(ctx)).Equal(0)
}
