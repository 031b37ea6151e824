package metrics

import "time"

// Step result categories.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
	ResultSkipped ResultLabel = "skipped"
)

// Observability hooks for build steps and pipelines.
type Recorder interface {
	ObserveStep(target, step string, d time.Duration, result ResultLabel)
	ObservePipeline(target string, d time.Duration, result ResultLabel)
}

// Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveStep(string, string, time.Duration, ResultLabel) {}
func (NoopRecorder) ObservePipeline(string, time.Duration, ResultLabel)     {}
