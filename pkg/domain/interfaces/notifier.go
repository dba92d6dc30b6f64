package interfaces

import (
	"context"

	"github.com/secmon-lab/herald/pkg/domain/model"
)

// Notifier forwards broadcast summaries to an external channel
type Notifier interface {
	NotifyBroadcast(ctx context.Context, result *model.BroadcastResult) error
}
