package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

type runDeps struct {
	newSampler func(name string) (Sampler, error)
	display    io.Writer
	logger     *zap.Logger
}

// run produces one report: validate, sample, grade, aggregate, render, emit.
// Nothing is sampled or written when the configuration is invalid, and
// nothing is emitted when sampling fails.
func run(cfg *Config, deps runDeps) (*HealthReport, error) {
	logger := deps.logger

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	format, err := parseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	outDir, err := cfg.ResolveOutputDir()
	if err != nil {
		return nil, err
	}
	sampler, err := deps.newSampler(cfg.Sampler)
	if err != nil {
		return nil, err
	}

	interval := time.Duration(cfg.Interval) * time.Second
	logger.Debug("Sampling host metrics",
		zap.String("sampler", cfg.Sampler),
		zap.Duration("interval", interval),
		zap.String("volume", cfg.Volume))

	snap, err := sampler.Sample(interval, cfg.Volume)
	if err != nil {
		return nil, err
	}
	if err := snap.checkFinite(); err != nil {
		return nil, err
	}

	logPath := filepath.Join(outDir, logFileName(snap.Timestamp))
	report := buildReport(snap, logPath)
	logger.Debug("Report built",
		zap.Float64("cpu_percent", snap.CPUPercent),
		zap.Float64("memory_percent", snap.MemoryPercent),
		zap.Float64("disk_percent", snap.DiskPercent),
		zap.String("overall_grade", string(report.Overall)))

	rendered, err := report.Render(format)
	if err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	if err := emit(rendered, deps.display, logPath); err != nil {
		return report, err
	}
	logger.Info("Report written", zap.String("path", logPath))

	if cfg.MetricsFile != "" {
		rec := newGradeRecorder()
		rec.Record(report)
		if err := rec.WriteTextfile(cfg.MetricsFile); err != nil {
			return report, err
		}
		logger.Info("Metrics exported", zap.String("path", cfg.MetricsFile))
	}

	return report, nil
}
