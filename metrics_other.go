//go:build !linux

package main

import "time"

// Outside linux the native sampler is gopsutil, which wraps the
// platform counters (PDH on windows, host_statistics on darwin).
func newNativeSampler() Sampler {
	return &gopsutilSampler{now: time.Now}
}
