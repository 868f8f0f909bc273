package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Stats returns aggregate request and operation counters as JSON. The full
// Prometheus series are served on /metrics.
func (h *Handlers) Stats(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}

	snap := h.metrics.Snapshot()

	var avgLatencyMs, errorRate, opFailureRate float64
	if snap.TotalRequests > 0 {
		avgLatencyMs = snap.TotalDuration / float64(snap.TotalRequests) * 1000
		errorRate = float64(snap.TotalErrors) / float64(snap.TotalRequests)
	}
	if snap.TotalOperations > 0 {
		opFailureRate = float64(snap.FailedOps) / float64(snap.TotalOperations)
	}

	c.JSON(http.StatusOK, gin.H{
		"enabled":        true,
		"service":        ServiceName,
		"uptime_seconds": snap.UptimeSeconds,
		"http": gin.H{
			"total_requests":     snap.TotalRequests,
			"total_errors":       snap.TotalErrors,
			"error_rate":         errorRate,
			"average_latency_ms": avgLatencyMs,
		},
		"operations": gin.H{
			"total":        snap.TotalOperations,
			"failed":       snap.FailedOps,
			"failure_rate": opFailureRate,
		},
	})
}
