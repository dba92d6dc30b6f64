package types

import "fmt"

// LogType classifies an activity log entry
type LogType string

const (
	LogTypeSuccess LogType = "success"
	LogTypeError   LogType = "error"
	LogTypeInfo    LogType = "info"
	LogTypeSystem  LogType = "system"
)

// AllLogTypes returns all valid log types
func AllLogTypes() []LogType {
	return []LogType{
		LogTypeSuccess,
		LogTypeError,
		LogTypeInfo,
		LogTypeSystem,
	}
}

// IsValid checks if the log type is valid
func (t LogType) IsValid() bool {
	switch t {
	case LogTypeSuccess,
		LogTypeError,
		LogTypeInfo,
		LogTypeSystem:
		return true
	default:
		return false
	}
}

// String returns the string representation of the log type
func (t LogType) String() string {
	return string(t)
}

// ParseLogType parses a string into a LogType
func ParseLogType(s string) (LogType, error) {
	t := LogType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid log type: %s", s)
	}
	return t, nil
}
