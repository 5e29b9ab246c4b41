package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Agent request metrics
	AgentRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brickops_agent_requests_total",
			Help: "Total number of agent invocations",
		},
		[]string{"status"}, // status: success|error
	)

	AgentDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "brickops_agent_duration_seconds",
			Help:    "End-to-end agent invocation duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
	)

	// Model call metrics
	ModelCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brickops_model_calls_total",
			Help: "Total number of chat model completions",
		},
		[]string{"status"},
	)

	ModelDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "brickops_model_duration_seconds",
			Help:    "Chat model completion duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	// Tool execution metrics
	ToolExecutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brickops_tool_executions_total",
			Help: "Total number of tool executions",
		},
		[]string{"tool", "status"}, // status: success|error
	)

	ToolDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brickops_tool_duration_seconds",
			Help:    "Tool execution duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"tool"},
	)
)

func init() {
	prometheus.MustRegister(
		AgentRequests,
		AgentDuration,
		ModelCalls,
		ModelDuration,
		ToolExecutions,
		ToolDuration,
	)
}

// Handler returns the HTTP handler for the /metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveAgentRequest records one agent invocation
func ObserveAgentRequest(status string, elapsed time.Duration) {
	AgentRequests.WithLabelValues(status).Inc()
	AgentDuration.Observe(elapsed.Seconds())
}

// ObserveModelCall records one chat model completion
func ObserveModelCall(status string, elapsed time.Duration) {
	ModelCalls.WithLabelValues(status).Inc()
	ModelDuration.Observe(elapsed.Seconds())
}

// ObserveToolExecution records one tool execution
func ObserveToolExecution(tool, status string, elapsed time.Duration) {
	ToolExecutions.WithLabelValues(tool, status).Inc()
	ToolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}
