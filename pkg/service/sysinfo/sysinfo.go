package sysinfo

import (
	"context"
	"runtime"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/herald/pkg/domain/model"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Service reports on the host the bot runs on
type Service interface {
	Collect(ctx context.Context) (*model.SystemInfo, error)
}

type collector struct{}

// New creates a gopsutil backed Service
func New() Service {
	return &collector{}
}

func (c *collector) Collect(ctx context.Context) (*model.SystemInfo, error) {
	info := &model.SystemInfo{
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
	}

	cpuCount, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to count CPUs")
	}
	info.CPUCount = cpuCount

	// interval 0 compares against the previous call, so this never blocks
	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get CPU usage")
	}
	if len(percents) > 0 {
		info.CPUPercent = percents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get memory usage")
	}
	info.MemoryUsedPercent = vm.UsedPercent
	info.MemoryUsedMB = vm.Used / 1024 / 1024
	info.MemoryTotalMB = vm.Total / 1024 / 1024

	hostInfo, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get host info")
	}
	info.Platform = hostInfo.Platform
	info.PlatformVersion = hostInfo.PlatformVersion
	info.KernelVersion = hostInfo.KernelVersion

	return info, nil
}
