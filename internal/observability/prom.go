package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Prom struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         *prometheus.GaugeVec
	// persistence slot
	PersistDuration    *prometheus.HistogramVec
	PersistErrorsTotal *prometheus.CounterVec

	// store tables
	Users    prometheus.Gauge
	Articles *prometheus.GaugeVec
	Images   prometheus.Gauge
}

func NewProm(reg prometheus.Registerer) *Prom {
	p := &Prom{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "neuralpulse",
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "neuralpulse",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "neuralpulse",
				Name:      "http_in_flight_requests",
				Help:      "Current number of in-flight HTTP requests.",
			},
			[]string{"method", "route"},
		),
		PersistDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "neuralpulse",
				Subsystem: "slot",
				Name:      "op_duration_seconds",
				Help:      "Persistence slot operation latency.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1, 2, 5},
			},
			[]string{"op", "status"},
		),
		PersistErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "neuralpulse",
				Subsystem: "slot",
				Name:      "errors_total",
				Help:      "Persistence slot errors by op and class.",
			},
			[]string{"op", "class"},
		),
		Users: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "neuralpulse",
				Subsystem: "store",
				Name:      "users",
				Help:      "Number of registered users.",
			},
		),
		Articles: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "neuralpulse",
				Subsystem: "store",
				Name:      "articles",
				Help:      "Number of articles by publication state.",
			},
			[]string{"state"}, // published|draft
		),
		Images: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "neuralpulse",
				Subsystem: "store",
				Name:      "images",
				Help:      "Number of uploaded images.",
			},
		),
	}
	reg.MustRegister(p.RequestsTotal, p.RequestsDuration, p.InFlight, p.PersistDuration, p.PersistErrorsTotal, p.Users, p.Articles, p.Images)

	return p
}

// SetStoreCounts refreshes the table gauges.
func (p *Prom) SetStoreCounts(users, published, drafts, images int) {
	p.Users.Set(float64(users))
	p.Articles.WithLabelValues("published").Set(float64(published))
	p.Articles.WithLabelValues("draft").Set(float64(drafts))
	p.Images.Set(float64(images))
}

func (p *Prom) GinHandleMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		// route template is only available after routing; best effort:
		route := ctx.FullPath()

		if route == "" {
			route = "unmatched"
		}

		method := ctx.Request.Method
		p.InFlight.WithLabelValues(method, route).Inc()
		defer p.InFlight.WithLabelValues(method, route).Dec()
		ctx.Next()

		status := strconv.Itoa(ctx.Writer.Status())
		secs := time.Since(start).Seconds()

		p.RequestsTotal.WithLabelValues(method, route, status).Inc()
		p.RequestsDuration.WithLabelValues(method, route, status).Observe(secs)
	}
}
