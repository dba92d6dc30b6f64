package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/herald/pkg/domain/interfaces"
	"github.com/secmon-lab/herald/pkg/domain/model"
	"github.com/secmon-lab/herald/pkg/domain/types"
	"github.com/slack-go/slack"
)

// maxListedFailures caps the failed usernames included in one notification
const maxListedFailures = 10

// SlackWebhook posts broadcast summaries to a Slack incoming webhook
type SlackWebhook struct {
	url string
}

var _ interfaces.Notifier = &SlackWebhook{}

// NewSlackWebhook creates a notifier for the webhook URL
func NewSlackWebhook(url string) (*SlackWebhook, error) {
	if url == "" {
		return nil, goerr.New("Slack webhook URL is required")
	}
	return &SlackWebhook{url: url}, nil
}

// NotifyBroadcast posts the tally of a finished broadcast
func (n *SlackWebhook) NotifyBroadcast(ctx context.Context, result *model.BroadcastResult) error {
	msg := &slack.WebhookMessage{
		Text: BroadcastText(result),
		Blocks: &slack.Blocks{
			BlockSet: buildBroadcastBlocks(result),
		},
	}

	if err := slack.PostWebhookContext(ctx, n.url, msg); err != nil {
		return goerr.Wrap(err, "failed to post Slack webhook",
			goerr.V("role_id", result.RoleID))
	}
	return nil
}

// BroadcastText is the plain text summary, also used as notification fallback
func BroadcastText(result *model.BroadcastResult) string {
	return fmt.Sprintf("DM broadcast to role %s: %d sent, %d failed",
		result.RoleLabel(), result.SuccessCount, result.FailedCount)
}

func buildBroadcastBlocks(result *model.BroadcastResult) []slack.Block {
	blocks := []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType,
				fmt.Sprintf("*DM broadcast to role %s*\n:white_check_mark: %d sent  :x: %d failed",
					result.RoleLabel(), result.SuccessCount, result.FailedCount),
				false, false),
			nil, nil,
		),
	}

	var failed []string
	for _, m := range result.Members {
		if m.Status == types.MemberStatusFailed {
			failed = append(failed, m.Username)
		}
	}
	if len(failed) == 0 {
		return blocks
	}

	text := "Failed: " + strings.Join(failed[:min(len(failed), maxListedFailures)], ", ")
	if len(failed) > maxListedFailures {
		text += fmt.Sprintf(" and %d more", len(failed)-maxListedFailures)
	}
	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject(slack.MarkdownType, text, false, false),
	))
	return blocks
}
