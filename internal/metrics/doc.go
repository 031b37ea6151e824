// Package metrics records step and pipeline outcomes of a build run.
//
// Pipelines receive a [Recorder]. [NoopRecorder] is the default; the
// [PrometheusRecorder] collects into a registry that is written once at the
// end of the run in Prometheus text format, suitable for a node exporter
// textfile collector on CI hosts.
package metrics
