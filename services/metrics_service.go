package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"catalina-keeper/internal/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

var (
	requestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keeper_request_total",
			Help: "Total HTTP requests served by the keeper",
		},
		[]string{"path"},
	)

	requestErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keeper_request_errors_total",
			Help: "HTTP requests answered with status >= 400",
		},
		[]string{"path"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "keeper_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	toolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keeper_tool_calls_total",
			Help: "Tool invocations by tool and result",
		},
		[]string{"tool", "result"},
	)

	launchFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keeper_launch_failures_total",
			Help: "Startup/shutdown scripts that could not be spawned",
		},
		[]string{"action"},
	)

	deployCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keeper_deployments_total",
			Help: "Deploy and rollback requests by kind and result",
		},
		[]string{"kind", "result"},
	)

	tomcatUp = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tomcat_up",
		Help: "1 when a process listens on the Tomcat port at the last probe",
	})

	gcFullCollections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tomcat_gc_full_collections",
		Help: "Full GC markers found in the GC log at the last probe",
	})

	gcYoungCollections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tomcat_gc_young_collections",
		Help: "Young GC markers found in the GC log at the last probe",
	})
)

// 健康检查接口需要的本地计数，prometheus 的计数器不便直接读取
var (
	totalRequests  atomic.Int64
	totalErrors    atomic.Int64
	totalDeploys   atomic.Int64
	totalRollbacks atomic.Int64
)

func init() {
	prometheus.MustRegister(requestCount)
	prometheus.MustRegister(requestErrors)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(toolCalls)
	prometheus.MustRegister(launchFailures)
	prometheus.MustRegister(deployCount)
	prometheus.MustRegister(tomcatUp)
	prometheus.MustRegister(gcFullCollections)
	prometheus.MustRegister(gcYoungCollections)
}

func IncrementRequestCount(path string) {
	requestCount.WithLabelValues(path).Inc()
	totalRequests.Add(1)
}

func IncrementErrorCount(path string) {
	requestErrors.WithLabelValues(path).Inc()
	totalErrors.Add(1)
}

func RecordRequestDuration(path string, seconds float64) {
	requestDuration.WithLabelValues(path).Observe(seconds)
}

func GetTotalRequestCount() int64 {
	return totalRequests.Load()
}

func GetTotalErrorCount() int64 {
	return totalErrors.Load()
}

func recordToolCall(tool string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	toolCalls.WithLabelValues(tool, result).Inc()
}

func recordLaunchFailure(action string) {
	launchFailures.WithLabelValues(action).Inc()
}

func recordDeploy(kind string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	} else if kind == "rollback" {
		totalRollbacks.Add(1)
	} else {
		totalDeploys.Add(1)
	}
	deployCount.WithLabelValues(kind, result).Inc()
}

func setTomcatUp(up bool) {
	if up {
		tomcatUp.Set(1)
	} else {
		tomcatUp.Set(0)
	}
}

func setGCCollections(young, full int) {
	gcYoungCollections.Set(float64(young))
	gcFullCollections.Set(float64(full))
}

/**
 * Push the keeper's metrics to a Prometheus pushgateway
 * @param {context.Context} ctx - Cancels the HTTP push
 * @param {string} addr - Pushgateway URL, e.g. "http://127.0.0.1:9091"
 * @returns {error} Returns error if the address is empty or the push fails
 * @description
 * - Pushes everything in the default registry under job "catalina_keeper"
 * - Used by "metrics push" for hosts where nothing scrapes /metrics
 */
func PushMetrics(ctx context.Context, addr string) error {
	if addr == "" {
		return fmt.Errorf("pushgateway address is not configured")
	}
	err := push.New(addr, "catalina_keeper").
		Gatherer(prometheus.DefaultGatherer).
		PushContext(ctx)
	if err != nil {
		logger.Errorf("Push metrics to '%s' failed: %v", addr, err)
		return err
	}
	logger.Infof("Metrics pushed to '%s'", addr)
	return nil
}
