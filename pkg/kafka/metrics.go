package kafka

import "github.com/prometheus/client_golang/prometheus"

// Metrics groups the producer and consumer counters. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	published       *prometheus.CounterVec
	publishErrors   *prometheus.CounterVec
	publishDuration *prometheus.HistogramVec

	received  *prometheus.CounterVec
	processed *prometheus.CounterVec
	failed    *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewMetrics creates the kafka metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kafka_producer_messages_published_total",
			Help: "Total number of Kafka messages published",
		}, []string{"topic"}),
		publishErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kafka_producer_publish_errors_total",
			Help: "Total number of Kafka publish errors",
		}, []string{"topic"}),
		publishDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kafka_producer_publish_duration_seconds",
			Help:    "Duration of Kafka publish operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"topic"}),
		received: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kafka_consumer_messages_received_total",
			Help: "Total number of Kafka messages fetched from the broker",
		}, []string{"topic", "consumer_group"}),
		processed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kafka_consumer_messages_processed_total",
			Help: "Total number of successfully processed Kafka messages",
		}, []string{"topic", "consumer_group"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kafka_consumer_messages_failed_total",
			Help: "Total number of Kafka messages skipped after exhausting retries",
		}, []string{"topic", "consumer_group"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kafka_consumer_processing_duration_seconds",
			Help:    "Duration of Kafka message processing in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"topic", "consumer_group"}),
	}
	reg.MustRegister(m.published, m.publishErrors, m.publishDuration,
		m.received, m.processed, m.failed, m.duration)
	return m
}

func (m *Metrics) observePublish(topic string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.publishDuration.WithLabelValues(topic).Observe(seconds)
	if err != nil {
		m.publishErrors.WithLabelValues(topic).Inc()
		return
	}
	m.published.WithLabelValues(topic).Inc()
}

func (m *Metrics) observeReceived(topic, group string) {
	if m == nil {
		return
	}
	m.received.WithLabelValues(topic, group).Inc()
}

func (m *Metrics) observeHandled(topic, group string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(topic, group).Observe(seconds)
	if err != nil {
		m.failed.WithLabelValues(topic, group).Inc()
		return
	}
	m.processed.WithLabelValues(topic, group).Inc()
}
