package main

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

type gopsutilSampler struct {
	now func() time.Time
}

func (g *gopsutilSampler) Sample(interval time.Duration, volume string) (Snapshot, error) {
	percents, err := cpu.Percent(interval, false)
	if err != nil {
		return Snapshot{}, &SamplingError{Metric: MetricCPU, Err: err}
	}
	if len(percents) == 0 {
		return Snapshot{}, &SamplingError{Metric: MetricCPU, Err: fmt.Errorf("no cpu counters returned")}
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return Snapshot{}, &SamplingError{Metric: MetricMemory, Err: err}
	}

	du, err := disk.Usage(volume)
	if err != nil {
		return Snapshot{}, &SamplingError{Metric: MetricDisk, Err: fmt.Errorf("usage %s: %w", volume, err)}
	}

	return Snapshot{
		CPUPercent:    percents[0],
		MemoryPercent: vm.UsedPercent,
		DiskPercent:   du.UsedPercent,
		Volume:        volume,
		Timestamp:     g.now(),
	}, nil
}
