package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "cmbuild"

// [Recorder] backed by Prometheus collectors.
type PrometheusRecorder struct {
	reg              *prom.Registry
	stepDuration     *prom.GaugeVec
	stepResults      *prom.CounterVec
	pipelineDuration *prom.GaugeVec
	pipelineResults  *prom.CounterVec
}

// Creates a recorder registering its collectors with reg. A nil reg uses a
// fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	pr := &PrometheusRecorder{
		reg: reg,
		stepDuration: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Duration of the last run of each build step",
		}, []string{"target", "step"}),
		stepResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "step_results_total",
			Help:      "Build step results by outcome",
		}, []string{"target", "step", "result"}),
		pipelineDuration: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Duration of the last run of each target pipeline",
		}, []string{"target"}),
		pipelineResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_results_total",
			Help:      "Target pipeline results by outcome",
		}, []string{"target", "result"}),
	}

	reg.MustRegister(pr.stepDuration, pr.stepResults, pr.pipelineDuration, pr.pipelineResults)
	return pr
}

func (p *PrometheusRecorder) ObserveStep(target, step string, d time.Duration, result ResultLabel) {
	p.stepDuration.WithLabelValues(target, step).Set(d.Seconds())
	p.stepResults.WithLabelValues(target, step, string(result)).Inc()
}

func (p *PrometheusRecorder) ObservePipeline(target string, d time.Duration, result ResultLabel) {
	p.pipelineDuration.WithLabelValues(target).Set(d.Seconds())
	p.pipelineResults.WithLabelValues(target, string(result)).Inc()
}

// Writes all collected metrics to path in Prometheus text format.
func (p *PrometheusRecorder) WriteFile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}
