// Package metrics содержит Prometheus-метрики HTTP-слоя и доменных операций.
//
// Методы безопасно вызывать на nil *Metrics: в тестах сервисов метрики не нужны.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "itlearn"

// Результаты обращений к внешним сервисам.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics набор коллекторов сервиса.
type Metrics struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	registrations   prometheus.Counter
	logins          *prometheus.CounterVec
	completions     prometheus.Counter
	videosWatched   prometheus.Counter
	quotaRejections prometheus.Counter
	llmCalls        *prometheus.CounterVec
	certificates    prometheus.Counter
	contactMessages prometheus.Counter
	payments        *prometheus.CounterVec
}

// New создаёт коллекторы и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Created user accounts.",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		completions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "course_completions_total",
			Help:      "Courses marked as completed.",
		}),
		videosWatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "videos_watched_total",
			Help:      "Accepted video views.",
		}),
		quotaRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quota_rejections_total",
			Help:      "Video views rejected by the free quota.",
		}),
		llmCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_calls_total",
			Help:      "Language model calls by kind and outcome.",
		}, []string{"kind", "outcome"}),
		certificates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "certificates_total",
			Help:      "Generated PDF certificates.",
		}),
		contactMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_messages_total",
			Help:      "Stored contact form messages.",
		}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_sessions_total",
			Help:      "Checkout sessions by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(
		m.httpRequests, m.httpDuration, m.registrations, m.logins, m.completions,
		m.videosWatched, m.quotaRejections, m.llmCalls, m.certificates,
		m.contactMessages, m.payments,
	)
	return m
}

// Middleware считает запросы по шаблону маршрута chi.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) IncRegistration() {
	if m != nil {
		m.registrations.Inc()
	}
}

func (m *Metrics) IncLogin(outcome string) {
	if m != nil {
		m.logins.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncCompletion() {
	if m != nil {
		m.completions.Inc()
	}
}

func (m *Metrics) IncVideoWatched() {
	if m != nil {
		m.videosWatched.Inc()
	}
}

func (m *Metrics) IncQuotaRejection() {
	if m != nil {
		m.quotaRejections.Inc()
	}
}

func (m *Metrics) IncLLMCall(kind, outcome string) {
	if m != nil {
		m.llmCalls.WithLabelValues(kind, outcome).Inc()
	}
}

func (m *Metrics) IncCertificate() {
	if m != nil {
		m.certificates.Inc()
	}
}

func (m *Metrics) IncContactMessage() {
	if m != nil {
		m.contactMessages.Inc()
	}
}

func (m *Metrics) IncCheckout(outcome string) {
	if m != nil {
		m.payments.WithLabelValues(outcome).Inc()
	}
}
