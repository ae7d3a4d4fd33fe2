package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// PoolStats is a point-in-time snapshot of connection pool counters.
type PoolStats struct {
	Acquired        int32
	Idle            int32
	Total           int32
	Max             int32
	AcquireCount    int64
	EmptyAcquires   int64
	AcquireDuration time.Duration
}

// PgxPoolStats adapts a pgx pool to a PoolStats source.
func PgxPoolStats(pool *pgxpool.Pool) func() PoolStats {
	return func() PoolStats {
		s := pool.Stat()
		return PoolStats{
			Acquired:        s.AcquiredConns(),
			Idle:            s.IdleConns(),
			Total:           s.TotalConns(),
			Max:             s.MaxConns(),
			AcquireCount:    s.AcquireCount(),
			EmptyAcquires:   s.EmptyAcquireCount(),
			AcquireDuration: s.AcquireDuration(),
		}
	}
}

// PoolStatsCollector exports pool statistics as Prometheus metrics at
// scrape time.
type PoolStatsCollector struct {
	stats   func() PoolStats
	service string

	acquired        *prometheus.Desc
	idle            *prometheus.Desc
	total           *prometheus.Desc
	max             *prometheus.Desc
	acquireCount    *prometheus.Desc
	emptyAcquires   *prometheus.Desc
	acquireDuration *prometheus.Desc
}

// NewPoolStatsCollector creates a collector reading from stats.
func NewPoolStatsCollector(stats func() PoolStats, service string) *PoolStatsCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc("db_pool_"+name, help, []string{"service"}, nil)
	}
	return &PoolStatsCollector{
		stats:           stats,
		service:         service,
		acquired:        desc("acquired_connections", "Number of currently acquired connections"),
		idle:            desc("idle_connections", "Number of currently idle connections"),
		total:           desc("total_connections", "Total number of connections in the pool"),
		max:             desc("max_connections", "Maximum number of connections allowed"),
		acquireCount:    desc("acquire_count_total", "Total number of connection acquires"),
		emptyAcquires:   desc("empty_acquire_count_total", "Acquires that had to wait for a connection"),
		acquireDuration: desc("acquire_duration_seconds_total", "Total time spent acquiring connections"),
	}
}

// Describe implements prometheus.Collector.
func (c *PoolStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{c.acquired, c.idle, c.total, c.max, c.acquireCount, c.emptyAcquires, c.acquireDuration} {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (c *PoolStatsCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()
	gauge := func(d *prometheus.Desc, v float64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v, c.service)
	}
	counter := func(d *prometheus.Desc, v float64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, v, c.service)
	}

	gauge(c.acquired, float64(s.Acquired))
	gauge(c.idle, float64(s.Idle))
	gauge(c.total, float64(s.Total))
	gauge(c.max, float64(s.Max))
	counter(c.acquireCount, float64(s.AcquireCount))
	counter(c.emptyAcquires, float64(s.EmptyAcquires))
	counter(c.acquireDuration, s.AcquireDuration.Seconds())
}
