package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "evaluation", Name: "http_requests_total", Help: "Processed HTTP requests",
	}, []string{"method", "route", "status"})
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "evaluation", Name: "http_request_duration_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	ReportCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "evaluation", Name: "report_cache_lookups_total", Help: "Group report cache lookups",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, ReportCacheLookups)
}

// Handler 暴露 /metrics
func Handler() http.Handler { return promhttp.Handler() }

// ObserveRequest 记录一次 HTTP 请求
func ObserveRequest(method, route string, status int, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveReportCache 记录报表缓存命中情况（hit / miss / error）
func ObserveReportCache(result string) {
	ReportCacheLookups.WithLabelValues(result).Inc()
}
