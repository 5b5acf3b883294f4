package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus метрик сервиса
// Все методы безопасны для nil-получателя: если метрики выключены, вызовы ничего не делают
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueriesTotal      *prometheus.CounterVec
	DBQueryDuration     *prometheus.HistogramVec
	DBOpenConnections   *prometheus.GaugeVec
	DBInUseConnections  *prometheus.GaugeVec
	DBIdleConnections   *prometheus.GaugeVec
	DBWaitCount         *prometheus.GaugeVec
	DBWaitDurationTotal *prometheus.GaugeVec

	// Домен
	BookingsCreated      *prometheus.CounterVec
	BookingsRejected     *prometheus.CounterVec
	OccurrencesGenerated *prometheus.CounterVec
	OccurrencesSkipped   *prometheus.CounterVec
	SlotsListed          *prometheus.CounterVec

	serviceName string
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики в указанном реестре (используется в тестах)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueriesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries",
		}, []string{"service", "operation", "status"}),

		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBOpenConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),

		DBInUseConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdleConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		DBWaitCount: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		DBWaitDurationTotal: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_duration_seconds_total",
			Help: "Total time blocked waiting for a new connection",
		}, []string{"service"}),

		BookingsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_bookings_created_total",
			Help: "Number of bookings committed",
		}, []string{"service"}),

		BookingsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_bookings_rejected_total",
			Help: "Number of booking attempts rejected by reason",
		}, []string{"service", "reason"}),

		OccurrencesGenerated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_occurrences_generated_total",
			Help: "Number of recurring occurrences materialized",
		}, []string{"service"}),

		OccurrencesSkipped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_occurrences_skipped_total",
			Help: "Number of recurring occurrences dropped because of a conflict",
		}, []string{"service"}),

		SlotsListed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_slots_listed_total",
			Help: "Number of bookable slots returned to clients",
		}, []string{"service"}),
	}
}

// ServiceName имя сервиса, которым помечаются метрики
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// IncBookingCreated увеличивает счетчик созданных бронирований
func (m *Metrics) IncBookingCreated() {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(m.serviceName).Inc()
}

// IncBookingRejected увеличивает счетчик отклоненных бронирований
func (m *Metrics) IncBookingRejected(reason string) {
	if m == nil {
		return
	}
	m.BookingsRejected.WithLabelValues(m.serviceName, reason).Inc()
}

// AddOccurrences учитывает сгенерированные и пропущенные повторения серии
func (m *Metrics) AddOccurrences(generated, skipped int) {
	if m == nil {
		return
	}
	m.OccurrencesGenerated.WithLabelValues(m.serviceName).Add(float64(generated))
	m.OccurrencesSkipped.WithLabelValues(m.serviceName).Add(float64(skipped))
}

// AddSlotsListed учитывает количество отданных слотов
func (m *Metrics) AddSlotsListed(n int) {
	if m == nil {
		return
	}
	m.SlotsListed.WithLabelValues(m.serviceName).Add(float64(n))
}
