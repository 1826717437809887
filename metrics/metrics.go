// Package metrics exposes delog statistics to Prometheus.
//
// Values are read from the logger's atomic counters when the registry is scraped,
// never from the logging path, so exporting them costs nothing per log call.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trickstertwo/delog"
)

// StatsSource is what the collector reads on every scrape. *delog.Logger satisfies it.
type StatsSource interface {
	Statistics() delog.Statistics
	Capacity() int
}

// Collector is a prometheus.Collector over one StatsSource.
type Collector struct {
	src StatsSource

	attempts    *prometheus.Desc
	successes   *prometheus.Desc
	dropped     *prometheus.Desc
	flushes     *prometheus.Desc
	bytesRead   *prometheus.Desc
	bytesWrite  *prometheus.Desc
	pending     *prometheus.Desc
	capacity    *prometheus.Desc
	utilization *prometheus.Desc
}

// NewCollector describes the delog metrics for src, labelled with component.
func NewCollector(src StatsSource, component string) *Collector {
	labels := prometheus.Labels{"component": component}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("delog", "buffer", name), help, nil, labels)
	}
	return &Collector{
		src:         src,
		attempts:    desc("attempts_total", "Log calls that passed the level gate"),
		successes:   desc("successes_total", "Log calls that were buffered or delivered immediately"),
		dropped:     desc("dropped_total", "Log calls dropped because the buffer was full or nesting too deep"),
		flushes:     desc("flushes_total", "Flush calls"),
		bytesRead:   desc("bytes_read_total", "Bytes drained from the ring buffer"),
		bytesWrite:  desc("bytes_written_total", "Bytes published to the ring buffer"),
		pending:     desc("pending_bytes", "Published bytes waiting to be flushed"),
		capacity:    desc("capacity_bytes", "Ring buffer capacity in bytes"),
		utilization: desc("utilization", "Pending bytes as a fraction of capacity (0.0 to 1.0)"),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.attempts
	ch <- c.successes
	ch <- c.dropped
	ch <- c.flushes
	ch <- c.bytesRead
	ch <- c.bytesWrite
	ch <- c.pending
	ch <- c.capacity
	ch <- c.utilization
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Statistics()
	capacity := c.src.Capacity()

	counter := func(d *prometheus.Desc, v uint64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v))
	}
	gauge := func(d *prometheus.Desc, v float64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v)
	}

	counter(c.attempts, s.Attempts)
	counter(c.successes, s.Successes)
	counter(c.dropped, s.Dropped())
	counter(c.flushes, s.Flushes)
	counter(c.bytesRead, s.Read)
	counter(c.bytesWrite, s.Written)

	pending := s.Pending()
	gauge(c.pending, float64(pending))
	gauge(c.capacity, float64(capacity))
	var util float64
	if capacity > 0 {
		util = min(float64(pending)/float64(capacity), 1)
	}
	gauge(c.utilization, util)
}

// Register creates a Collector for src and registers it with reg.
func Register(reg prometheus.Registerer, src StatsSource, component string) (*Collector, error) {
	c := NewCollector(src, component)
	if err := reg.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}
