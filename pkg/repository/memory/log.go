package memory

import (
	"context"
	"sync"
	"time"

	"github.com/secmon-lab/herald/pkg/domain/model"
	"github.com/secmon-lab/herald/pkg/domain/types"
)

// logRepository is a bounded ring of log entries kept in append order
type logRepository struct {
	mu       sync.RWMutex
	capacity int
	entries  []*model.LogEntry
}

func newLogRepository(capacity int) *logRepository {
	return &logRepository{
		capacity: capacity,
		entries:  make([]*model.LogEntry, 0, min(capacity, 64)),
	}
}

func (r *logRepository) Append(ctx context.Context, logType types.LogType, message string) (*model.LogEntry, error) {
	entry := &model.LogEntry{
		ID:        model.NewLogEntryID(),
		Type:      logType,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) >= r.capacity {
		// drop oldest; shift keeps the slice in append order
		n := copy(r.entries, r.entries[len(r.entries)-r.capacity+1:])
		clear(r.entries[n:])
		r.entries = r.entries[:n]
	}
	r.entries = append(r.entries, entry)

	return entry.Copy(), nil
}

func (r *logRepository) List(ctx context.Context, filter types.LogType) ([]*model.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.LogEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if filter != "" && e.Type != filter {
			continue
		}
		result = append(result, e.Copy())
	}
	return result, nil
}

func (r *logRepository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
