package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/secmon-lab/herald/pkg/domain/types"
)

// BotStatus is computed on demand from the live gateway connection
type BotStatus struct {
	State      types.BotState
	Uptime     time.Duration
	ServerName string
	Latency    time.Duration
}

// UptimeText renders Uptime as e.g. "1d 2h 3m 4s". Zero units above the
// most significant one are omitted.
func (s *BotStatus) UptimeText() string {
	if s.State != types.BotStateOnline {
		return "N/A"
	}
	return FormatUptime(s.Uptime)
}

// LatencyText renders the heartbeat latency in milliseconds
func (s *BotStatus) LatencyText() string {
	if s.State != types.BotStateOnline {
		return "N/A"
	}
	return fmt.Sprintf("%dms", s.Latency.Milliseconds())
}

// FormatUptime formats d with day, hour, minute and second units
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if days > 0 || hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if days > 0 || hours > 0 || minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))
	return strings.Join(parts, " ")
}
