package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/herald/pkg/domain/interfaces"
	"github.com/secmon-lab/herald/pkg/domain/model"
	"github.com/secmon-lab/herald/pkg/domain/types"
)

// LogFilterAll is the dashboard's explicit "no filter" value
const LogFilterAll = "all"

type LogUseCase struct {
	repo interfaces.Repository
}

func NewLogUseCase(repo interfaces.Repository) *LogUseCase {
	return &LogUseCase{repo: repo}
}

// List returns activity log entries oldest first. An empty filter or "all"
// returns everything; an unknown type matches nothing.
func (uc *LogUseCase) List(ctx context.Context, filter string) ([]*model.LogEntry, error) {
	filter = strings.ToLower(strings.TrimSpace(filter))

	var logType types.LogType
	if filter != "" && filter != LogFilterAll {
		parsed, err := types.ParseLogType(filter)
		if err != nil {
			return []*model.LogEntry{}, nil
		}
		logType = parsed
	}

	entries, err := uc.repo.Log().List(ctx, logType)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list activity log", goerr.V("filter", filter))
	}
	return entries, nil
}
