package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const (
	bannerStart = "===== System Health Report ====="
	bannerEnd   = "===== End of Report ====="

	displayTimeLayout = "2006-01-02 15:04:05"
	fileTimeLayout    = "20060102-150405"
	logFileSuffix     = "_system_health.log"
)

func parseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text":
		return FormatText, nil
	case "json", "structured":
		return FormatJSON, nil
	case "yaml":
		return FormatYAML, nil
	}
	return "", &ConfigurationError{Field: "format", Value: s, Reason: "must be text, json (structured) or yaml"}
}

// logFileName sorts lexicographically in calendar order.
func logFileName(t time.Time) string {
	return t.Format(fileTimeLayout) + logFileSuffix
}

// HealthReport is the outcome of one run. It is never modified after buildReport.
type HealthReport struct {
	GeneratedAt time.Time
	Volume      string
	Readings    map[MetricKind]float64
	Grades      map[MetricKind]Grade
	Overall     Grade
	LogPath     string
}

func buildReport(snap Snapshot, logPath string) *HealthReport {
	r := &HealthReport{
		GeneratedAt: snap.Timestamp,
		Volume:      snap.Volume,
		Readings:    make(map[MetricKind]float64, len(metricOrder)),
		Grades:      make(map[MetricKind]Grade, len(metricOrder)),
		LogPath:     logPath,
	}
	for _, k := range metricOrder {
		v := snap.Value(k)
		r.Readings[k] = v
		r.Grades[k] = gradeValue(v, thresholds[k])
	}
	r.Overall = aggregate(r.Grades[MetricCPU], r.Grades[MetricMemory], r.Grades[MetricDisk])
	return r
}

// Render serializes the report. The output depends only on the report's
// fields, so rendering the same report twice gives identical bytes.
func (r *HealthReport) Render(format Format) ([]byte, error) {
	switch format {
	case FormatText:
		return r.renderText(), nil
	case FormatJSON:
		data, err := json.Marshal(r.document())
		if err != nil {
			return nil, fmt.Errorf("encoding json report: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(r.document())
		if err != nil {
			return nil, fmt.Errorf("encoding yaml report: %w", err)
		}
		return data, nil
	}
	return nil, &ConfigurationError{Field: "format", Value: string(format), Reason: "unsupported"}
}

func (r *HealthReport) renderText() []byte {
	var b bytes.Buffer
	fmt.Fprintln(&b, bannerStart)
	fmt.Fprintf(&b, "Report generated on: %s\n", r.GeneratedAt.Format(displayTimeLayout))
	fmt.Fprintln(&b, "System Metrics:")
	for _, k := range metricOrder {
		fmt.Fprintf(&b, "%s Usage: %.2f%%\n", k.Label(), r.Readings[k])
	}
	fmt.Fprintf(&b, "Disk Volume: %s\n", r.Volume)
	fmt.Fprintln(&b, "Metric Grades:")
	for _, k := range metricOrder {
		fmt.Fprintf(&b, "%s Grade: %s\n", k.Label(), r.Grades[k])
	}
	fmt.Fprintln(&b, "Overall System Grade:")
	fmt.Fprintf(&b, "Final Grade: %s\n", r.Overall)
	fmt.Fprintf(&b, "Log File: %s\n", r.LogPath)
	fmt.Fprintln(&b, bannerEnd)
	return b.Bytes()
}

type metricValues struct {
	CPU    float64 `json:"cpu" yaml:"cpu"`
	Memory float64 `json:"memory" yaml:"memory"`
	Disk   float64 `json:"disk" yaml:"disk"`
}

type metricGrades struct {
	CPU    Grade `json:"cpu" yaml:"cpu"`
	Memory Grade `json:"memory" yaml:"memory"`
	Disk   Grade `json:"disk" yaml:"disk"`
}

// reportDocument fixes the key names and order of the structured renderings.
type reportDocument struct {
	Timestamp    time.Time    `json:"timestamp" yaml:"timestamp"`
	Volume       string       `json:"volume" yaml:"volume"`
	Readings     metricValues `json:"readings" yaml:"readings"`
	Grades       metricGrades `json:"grades" yaml:"grades"`
	OverallGrade Grade        `json:"overall_grade" yaml:"overall_grade"`
	LogPath      string       `json:"log_path" yaml:"log_path"`
}

func (r *HealthReport) document() reportDocument {
	return reportDocument{
		Timestamp: r.GeneratedAt,
		Volume:    r.Volume,
		Readings: metricValues{
			CPU:    r.Readings[MetricCPU],
			Memory: r.Readings[MetricMemory],
			Disk:   r.Readings[MetricDisk],
		},
		Grades: metricGrades{
			CPU:    r.Grades[MetricCPU],
			Memory: r.Grades[MetricMemory],
			Disk:   r.Grades[MetricDisk],
		},
		OverallGrade: r.Overall,
		LogPath:      r.LogPath,
	}
}

// parseReport decodes a json or yaml rendering back into a report.
func parseReport(format Format, data []byte) (*HealthReport, error) {
	var doc reportDocument
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding json report: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding yaml report: %w", err)
		}
	default:
		return nil, fmt.Errorf("cannot parse %s report", format)
	}

	r := &HealthReport{
		GeneratedAt: doc.Timestamp,
		Volume:      doc.Volume,
		Readings: map[MetricKind]float64{
			MetricCPU:    doc.Readings.CPU,
			MetricMemory: doc.Readings.Memory,
			MetricDisk:   doc.Readings.Disk,
		},
		Grades:  make(map[MetricKind]Grade, len(metricOrder)),
		LogPath: doc.LogPath,
	}
	raw := map[MetricKind]Grade{
		MetricCPU:    doc.Grades.CPU,
		MetricMemory: doc.Grades.Memory,
		MetricDisk:   doc.Grades.Disk,
	}
	for _, k := range metricOrder {
		g, err := parseGrade(string(raw[k]))
		if err != nil {
			return nil, fmt.Errorf("%s grade: %w", k, err)
		}
		r.Grades[k] = g
	}
	overall, err := parseGrade(string(doc.OverallGrade))
	if err != nil {
		return nil, fmt.Errorf("overall grade: %w", err)
	}
	r.Overall = overall
	return r, nil
}
