package usecase

import (
	"context"

	"github.com/secmon-lab/herald/pkg/domain/interfaces"
	"github.com/secmon-lab/herald/pkg/domain/types"
	"github.com/secmon-lab/herald/pkg/utils/logging"
)

// appendActivity writes an operator facing entry. A failing log store must
// never fail the operation that produced the event.
func appendActivity(ctx context.Context, repo interfaces.Repository, logType types.LogType, message string) {
	if _, err := repo.Log().Append(ctx, logType, message); err != nil {
		logging.From(ctx).Warn("failed to append activity log",
			"type", logType.String(),
			"message", message,
			"error", err.Error())
	}
}
