package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ProvidersCreated     prometheus.Counter
	ProviderReviews      *prometheus.CounterVec
	BookableItemsCreated *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
}

// New đăng ký metrics vào reg. Test truyền prometheus.NewRegistry() để tránh trùng tên.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ProvidersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "travelhub_providers_created_total",
			Help: "Total number of providers submitted for approval",
		}),
		ProviderReviews: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "travelhub_provider_reviews_total",
			Help: "Total number of provider reviews by resulting status",
		}, []string{"status"}),
		BookableItemsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "travelhub_bookable_items_created_total",
			Help: "Total number of bookable items created by item type",
		}, []string{"item_type"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "travelhub_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
	}
}

// Các method chấp nhận receiver nil để service chạy được khi không bật metrics

func (m *Metrics) IncProviderCreated() {
	if m == nil {
		return
	}
	m.ProvidersCreated.Inc()
}

func (m *Metrics) IncProviderReviewed(status string) {
	if m == nil {
		return
	}
	m.ProviderReviews.WithLabelValues(status).Inc()
}

func (m *Metrics) IncItemCreated(itemType string) {
	if m == nil {
		return
	}
	m.BookableItemsCreated.WithLabelValues(itemType).Inc()
}

func (m *Metrics) ObserveRequest(method, route, status string, start time.Time) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
}
