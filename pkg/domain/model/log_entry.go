package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/herald/pkg/domain/types"
)

// LogEntryID is a time ordered UUID (v7) identifying an activity log entry
type LogEntryID string

// NewLogEntryID generates a new LogEntryID
func NewLogEntryID() LogEntryID {
	return LogEntryID(uuid.Must(uuid.NewV7()).String())
}

// LogEntry is an operator facing record of a notable event. It is immutable
// once appended and lives only as long as the process.
type LogEntry struct {
	ID        LogEntryID
	Type      types.LogType
	Message   string
	CreatedAt time.Time
}

// Copy returns a shallow copy so callers cannot mutate stored entries
func (e *LogEntry) Copy() *LogEntry {
	if e == nil {
		return nil
	}
	copied := *e
	return &copied
}
