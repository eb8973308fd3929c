//go:build linux

package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// procfsSampler reads utilization straight from /proc and statfs(2).
type procfsSampler struct {
	procRoot string
	statfs   func(path string, st *syscall.Statfs_t) error
	sleep    func(time.Duration)
	now      func() time.Time
}

func newNativeSampler() Sampler {
	return &procfsSampler{
		procRoot: "/proc",
		statfs:   syscall.Statfs,
		sleep:    time.Sleep,
		now:      time.Now,
	}
}

type cpuTimes struct {
	busy uint64
	idle uint64
}

func (p *procfsSampler) Sample(interval time.Duration, volume string) (Snapshot, error) {
	cpu, err := p.cpuPercent(interval)
	if err != nil {
		return Snapshot{}, &SamplingError{Metric: MetricCPU, Err: err}
	}
	mem, err := p.memPercent()
	if err != nil {
		return Snapshot{}, &SamplingError{Metric: MetricMemory, Err: err}
	}
	disk, err := p.diskPercent(volume)
	if err != nil {
		return Snapshot{}, &SamplingError{Metric: MetricDisk, Err: err}
	}
	return Snapshot{
		CPUPercent:    cpu,
		MemoryPercent: mem,
		DiskPercent:   disk,
		Volume:        volume,
		Timestamp:     p.now(),
	}, nil
}

func (p *procfsSampler) cpuPercent(interval time.Duration) (float64, error) {
	before, err := p.readCPUTimes()
	if err != nil {
		return 0, err
	}
	p.sleep(interval)
	after, err := p.readCPUTimes()
	if err != nil {
		return 0, err
	}

	// Counters can go backwards after a CPU is hotplugged.
	if after.busy < before.busy || after.idle < before.idle {
		return 0, fmt.Errorf("cpu counters went backwards during sampling")
	}
	db := after.busy - before.busy
	di := after.idle - before.idle
	total := db + di
	if total == 0 {
		return 0, fmt.Errorf("cpu counters did not advance over %s", interval)
	}
	return float64(db) / float64(total) * 100, nil
}

func (p *procfsSampler) readCPUTimes() (cpuTimes, error) {
	f, err := os.Open(filepath.Join(p.procRoot, "stat"))
	if err != nil {
		return cpuTimes{}, fmt.Errorf("open stat: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return cpuTimes{}, fmt.Errorf("read stat: %w", err)
		}
		return cpuTimes{}, fmt.Errorf("read stat: empty file")
	}
	return parseCPULine(scanner.Text())
}

// parseCPULine parses the aggregate line of /proc/stat:
// "cpu  user nice system idle iowait irq softirq steal ..."
func parseCPULine(line string) (cpuTimes, error) {
	fields := strings.Fields(line)
	if len(fields) < 5 || fields[0] != "cpu" {
		return cpuTimes{}, fmt.Errorf("unexpected stat line %q", line)
	}

	var vals [8]uint64
	for i := 0; i < len(vals) && i+1 < len(fields); i++ {
		v, err := strconv.ParseUint(fields[i+1], 10, 64)
		if err != nil {
			return cpuTimes{}, fmt.Errorf("parse stat field %d: %w", i+1, err)
		}
		vals[i] = v
	}
	user, nice, system, idle, iowait, irq, softirq, steal :=
		vals[0], vals[1], vals[2], vals[3], vals[4], vals[5], vals[6], vals[7]

	return cpuTimes{
		busy: user + nice + system + irq + softirq + steal,
		idle: idle + iowait,
	}, nil
}

func (p *procfsSampler) memPercent() (float64, error) {
	f, err := os.Open(filepath.Join(p.procRoot, "meminfo"))
	if err != nil {
		return 0, fmt.Errorf("open meminfo: %w", err)
	}
	defer f.Close()

	info := make(map[string]uint64)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, val, ok := parseMeminfoLine(scanner.Text())
		if ok {
			info[key] = val
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("read meminfo: %w", err)
	}
	return memUsedPercent(info)
}

// parseMeminfoLine parses "MemTotal:       16314236 kB".
func parseMeminfoLine(line string) (string, uint64, bool) {
	key, rest, found := strings.Cut(line, ":")
	if !found {
		return "", 0, false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", 0, false
	}
	v, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return "", 0, false
	}
	return strings.TrimSpace(key), v, true
}

func memUsedPercent(info map[string]uint64) (float64, error) {
	total := info["MemTotal"]
	if total == 0 {
		return 0, fmt.Errorf("meminfo: MemTotal missing")
	}
	avail, ok := info["MemAvailable"]
	if !ok {
		// Kernels before 3.14 have no MemAvailable.
		avail = info["MemFree"] + info["Buffers"] + info["Cached"]
	}
	if avail > total {
		avail = total
	}
	return float64(total-avail) / float64(total) * 100, nil
}

func (p *procfsSampler) diskPercent(volume string) (float64, error) {
	var st syscall.Statfs_t
	if err := p.statfs(volume, &st); err != nil {
		return 0, fmt.Errorf("statfs %s: %w", volume, err)
	}
	bsize := uint64(st.Bsize)
	return diskUsedPercent(st.Blocks*bsize, st.Bfree*bsize, st.Bavail*bsize), nil
}

// diskUsedPercent excludes blocks reserved for root, matching df(1).
func diskUsedPercent(total, free, avail uint64) float64 {
	if free > total {
		return 0
	}
	used := total - free
	if used+avail == 0 {
		return 0
	}
	return float64(used) / float64(used+avail) * 100
}
