package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector метрики обращений к API брокера и отправленных ордеров
type Collector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	ordersTotal     *prometheus.CounterVec
}

func NewCollector() *Collector {
	return &Collector{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "robinhood_api_requests_total",
				Help: "Total number of Robinhood API requests",
			},
			[]string{"endpoint", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "robinhood_api_request_duration_seconds",
				Help: "Duration of Robinhood API requests in seconds",
			},
			[]string{"endpoint"},
		),
		ordersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "robinhood_orders_total",
				Help: "Orders submitted",
			},
			[]string{"venue", "side", "status"},
		),
	}
}

// Register регистрирует метрики в reg
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, m := range []prometheus.Collector{c.requestsTotal, c.requestDuration, c.ordersTotal} {
		if err := reg.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// ObserveRequest status 0 означает, что ответ не был получен
func (c *Collector) ObserveRequest(endpoint string, status int, duration time.Duration) {
	c.requestsTotal.WithLabelValues(endpoint, statusLabel(status)).Inc()
	c.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (c *Collector) ObserveOrder(venue, side string, status int) {
	c.ordersTotal.WithLabelValues(venue, side, statusLabel(status)).Inc()
}

func statusLabel(status int) string {
	if status == 0 {
		return "error"
	}
	return strconv.Itoa(status)
}

// Serve поднимает /metrics на addr для reg
func Serve(addr string, reg prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
