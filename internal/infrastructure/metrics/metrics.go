package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every application collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	PostsCreated    prometheus.Counter
	PostsUpdated    prometheus.Counter
	CommentsCreated prometheus.Counter
	Follows         prometheus.Counter
	Unfollows       prometheus.Counter
	PageCache       *prometheus.CounterVec
}

// New registers the collectors on reg (a fresh registry when nil)
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yatube_http_requests_total",
				Help: "Total number of HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "yatube_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		PostsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yatube_posts_created_total",
			Help: "Total number of successfully published posts",
		}),
		PostsUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yatube_posts_updated_total",
			Help: "Total number of successful post edits",
		}),
		CommentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yatube_comments_created_total",
			Help: "Total number of successfully added comments",
		}),
		Follows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yatube_follows_total",
			Help: "Total number of follow requests",
		}),
		Unfollows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yatube_unfollows_total",
			Help: "Total number of unfollow requests",
		}),
		PageCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yatube_page_cache_lookups_total",
				Help: "Full-page cache lookups by result (hit, miss)",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.PostsCreated,
		m.PostsUpdated,
		m.CommentsCreated,
		m.Follows,
		m.Unfollows,
		m.PageCache,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler serves the registry in Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(seconds)
}

func (m *Metrics) PostCreated() {
	if m != nil {
		m.PostsCreated.Inc()
	}
}

func (m *Metrics) PostUpdated() {
	if m != nil {
		m.PostsUpdated.Inc()
	}
}

func (m *Metrics) CommentCreated() {
	if m != nil {
		m.CommentsCreated.Inc()
	}
}

func (m *Metrics) Followed() {
	if m != nil {
		m.Follows.Inc()
	}
}

func (m *Metrics) Unfollowed() {
	if m != nil {
		m.Unfollows.Inc()
	}
}

func (m *Metrics) CacheHit() {
	if m != nil {
		m.PageCache.WithLabelValues("hit").Inc()
	}
}

func (m *Metrics) CacheMiss() {
	if m != nil {
		m.PageCache.WithLabelValues("miss").Inc()
	}
}
