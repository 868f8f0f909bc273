/*
Package monitoring provides Prometheus metrics for the filesystem server.

# Overview

Each Metrics value owns a private registry, so tests and embedded servers can
create as many collectors as they like. The registry is exposed through
Handler and mounted at /metrics by the server.

# Metrics

  - fsserver_http_* request counts, latency and sizes by route template
  - fsserver_operations_total and fsserver_operation_duration_seconds by op
  - fsserver_bytes_read_total and fsserver_bytes_written_total
  - fsserver_listed_entries_total and fsserver_skipped_entries_total
  - fsserver_uptime_seconds plus the Go and process collectors

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "read")
	// ... perform operation ...
	timer.Stop("ok")
*/
package monitoring
