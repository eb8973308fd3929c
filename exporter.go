package main

import (
	"github.com/prometheus/client_golang/prometheus"
)

// gradeRecorder mirrors a report into Prometheus gauges. It owns a private
// registry so a run never exports the client library's default collectors.
type gradeRecorder struct {
	registry     *prometheus.Registry
	usage        *prometheus.GaugeVec
	gradeScore   *prometheus.GaugeVec
	overallScore prometheus.Gauge
	generatedAt  prometheus.Gauge
}

func newGradeRecorder() *gradeRecorder {
	r := &gradeRecorder{
		registry: prometheus.NewRegistry(),
		usage: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "healthgrade_usage_percent",
			Help: "Sampled utilization of the host resource, in percent",
		}, []string{"metric"}),
		gradeScore: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "healthgrade_grade_score",
			Help: "Per-metric grade as a score (A=3, B=2, C=1)",
		}, []string{"metric"}),
		overallScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "healthgrade_overall_grade_score",
			Help: "Overall system grade as a score (A=3, B=2, C=1)",
		}),
		generatedAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "healthgrade_report_timestamp_seconds",
			Help: "Unix time the report was generated",
		}),
	}
	r.registry.MustRegister(r.usage, r.gradeScore, r.overallScore, r.generatedAt)
	return r
}

func (r *gradeRecorder) Record(report *HealthReport) {
	for _, k := range metricOrder {
		r.usage.WithLabelValues(string(k)).Set(report.Readings[k])
		r.gradeScore.WithLabelValues(string(k)).Set(float64(report.Grades[k].Score()))
	}
	r.overallScore.Set(float64(report.Overall.Score()))
	r.generatedAt.Set(float64(report.GeneratedAt.Unix()))
}

// WriteTextfile writes the gauges in the node_exporter textfile format.
func (r *gradeRecorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	return nil
}
