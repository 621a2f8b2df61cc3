// Package metrics exposes decoding statistics to Prometheus.
package metrics

import (
	"time"

	"github.com/ieee0824/ctcdecode/decoder"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ctcdecode"

// Collector counts decoded sequences. It implements decoder.Observer and
// prometheus.Collector.
type Collector struct {
	decodes     prometheus.Counter
	allRejected prometheus.Counter
	timesteps   prometheus.Counter
	failures    prometheus.Counter
	duration    prometheus.Histogram
}

var _ decoder.Observer = (*Collector)(nil)

// NewCollector creates an unregistered collector.
func NewCollector() *Collector {
	return &Collector{
		decodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sequences_total",
			Help:      "Total number of decoded sequences",
		}),
		allRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sequences_rejected_total",
			Help:      "Decoded sequences for which the scorer rejected every hypothesis",
		}),
		timesteps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "timesteps_total",
			Help:      "Total number of time steps consumed",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_failed_total",
			Help:      "Decode requests that failed validation or decoding",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sequence_duration_seconds",
			Help:      "Time spent decoding one sequence",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
	}
}

// ObserveDecode records one decoded sequence.
func (c *Collector) ObserveDecode(timesteps int, elapsed time.Duration, res decoder.Result) {
	c.decodes.Inc()
	c.timesteps.Add(float64(timesteps))
	c.duration.Observe(elapsed.Seconds())
	if res.AllRejected() {
		c.allRejected.Inc()
	}
}

// ObserveFailure records a failed request.
func (c *Collector) ObserveFailure() {
	c.failures.Inc()
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.decodes.Describe(ch)
	c.allRejected.Describe(ch)
	c.timesteps.Describe(ch)
	c.failures.Describe(ch)
	c.duration.Describe(ch)
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.decodes.Collect(ch)
	c.allRejected.Collect(ch)
	c.timesteps.Collect(ch)
	c.failures.Collect(ch)
	c.duration.Collect(ch)
}
