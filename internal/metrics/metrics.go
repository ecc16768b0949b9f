// Package metrics
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CMSFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cms_fetch_duration_seconds",
			Help:    "Duration of content bucket fetches in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"collection"},
	)
	CMSFetchErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cms_fetch_errors_total",
			Help: "Total number of failed content bucket fetches, labeled by collection.",
		},
		[]string{"collection"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	NewsletterSubscriptions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsletter_subscriptions_total",
			Help: "Total number of newsletter submissions, labeled by outcome.",
		},
		[]string{"outcome"},
	)
	SignupSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signup_submissions_total",
			Help: "Total number of signup form submissions, labeled by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(CMSFetchDuration)
	prometheus.MustRegister(CMSFetchErrors)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(NewsletterSubscriptions)
	prometheus.MustRegister(SignupSubmissions)
}

// Outcome labels
const (
	OutcomeAccepted = "accepted"
	OutcomeInvalid  = "invalid"
	OutcomeLimited  = "rate_limited"
	OutcomeFailed   = "failed"
)

// ObserveFetch records one bucket fetch that started at start
func ObserveFetch(collection string, start time.Time, err error) {
	CMSFetchDuration.WithLabelValues(collection).Observe(time.Since(start).Seconds())
	if err != nil {
		CMSFetchErrors.WithLabelValues(collection).Inc()
	}
}

// Middleware records request latency by route template
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
