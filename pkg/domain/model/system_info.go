package model

// SystemInfo describes the host the bot runs on
type SystemInfo struct {
	GoVersion         string
	Goroutines        int
	CPUCount          int
	CPUPercent        float64
	MemoryUsedPercent float64
	MemoryUsedMB      uint64
	MemoryTotalMB     uint64
	Platform          string
	PlatformVersion   string
	KernelVersion     string
}
