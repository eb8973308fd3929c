package main

import (
	"fmt"
	"math"
	"time"
)

type MetricKind string

const (
	MetricCPU    MetricKind = "cpu"
	MetricMemory MetricKind = "memory"
	MetricDisk   MetricKind = "disk"
)

// metricOrder is the fixed order used everywhere a report lists metrics.
var metricOrder = []MetricKind{MetricCPU, MetricMemory, MetricDisk}

func (k MetricKind) Label() string {
	switch k {
	case MetricCPU:
		return "CPU"
	case MetricMemory:
		return "Memory"
	case MetricDisk:
		return "Disk"
	}
	return string(k)
}

// Snapshot holds one sample of host utilization, all values in percent.
type Snapshot struct {
	CPUPercent    float64
	MemoryPercent float64
	DiskPercent   float64
	Volume        string
	Timestamp     time.Time
}

func (s Snapshot) Value(k MetricKind) float64 {
	switch k {
	case MetricCPU:
		return s.CPUPercent
	case MetricMemory:
		return s.MemoryPercent
	case MetricDisk:
		return s.DiskPercent
	}
	return 0
}

// checkFinite rejects readings that cannot be graded or serialized.
func (s Snapshot) checkFinite() error {
	for _, k := range metricOrder {
		v := s.Value(k)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &SamplingError{Metric: k, Err: fmt.Errorf("non-finite reading %v", v)}
		}
	}
	return nil
}

// Sampler reads current CPU, memory and disk utilization. CPU usage is
// measured across interval, so Sample blocks for at least that long.
type Sampler interface {
	Sample(interval time.Duration, volume string) (Snapshot, error)
}

const (
	samplerNative   = "native"
	samplerGopsutil = "gopsutil"
)

func newSampler(name string) (Sampler, error) {
	switch name {
	case "", samplerGopsutil:
		return &gopsutilSampler{now: time.Now}, nil
	case samplerNative:
		return newNativeSampler(), nil
	}
	return nil, &ConfigurationError{Field: "sampler", Value: name, Reason: "must be native or gopsutil"}
}
