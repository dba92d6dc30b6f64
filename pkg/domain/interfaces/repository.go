package interfaces

import (
	"context"

	"github.com/secmon-lab/herald/pkg/domain/model"
	"github.com/secmon-lab/herald/pkg/domain/types"
)

// LogRepository is the activity log store. Append is the only mutation and
// must be safe for concurrent callers.
type LogRepository interface {
	// Append records a new entry stamped with the current time
	Append(ctx context.Context, logType types.LogType, message string) (*model.LogEntry, error)

	// List returns entries in append order. An empty filter returns all entries.
	List(ctx context.Context, filter types.LogType) ([]*model.LogEntry, error)

	// Count returns the number of retained entries
	Count(ctx context.Context) int
}

// Repository groups the stores used by the use cases
type Repository interface {
	Log() LogRepository
}
