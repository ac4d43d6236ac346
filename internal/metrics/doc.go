// Package metrics records course build metrics.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default; PrometheusRecorder collects into a registry that WriteTextfile
// can export for the node_exporter textfile collector after a one-shot build.
package metrics
