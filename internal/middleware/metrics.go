package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NewMetrics returns a middleware that records a request counter and a
// latency histogram on reg. Routes are labelled by their chi pattern
// (/itinerary/days/{dayID}), never the raw path.
//
// Wire it on the top-level router so the route pattern is resolved by the
// time the handler returns.
func NewMetrics(reg prometheus.Registerer) func(http.Handler) http.Handler {
	factory := promauto.With(reg)
	requests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "travel_planner",
		Name:      "http_requests_total",
		Help:      "HTTP requests served, by method, route and status.",
	}, []string{"method", "route", "status"})
	latency := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "travel_planner",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency, by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			latency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
