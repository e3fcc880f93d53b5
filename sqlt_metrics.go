package sqlt

import (
	"github.com/prometheus/client_golang/prometheus"
)

const resultOk = `ok`

/*
Prometheus collectors updated by `Builder`. Counts builds by result, which is
"ok" or the `ErrCode` of the failure, and observes build duration.
*/
type Metrics struct {
	Builds   *prometheus.CounterVec
	Duration prometheus.Histogram
}

/*
Makes collectors and registers them with the registerer. A nil registerer
leaves them unregistered. Panics if registration fails, for example on
duplicate registration.
*/
func NewMetrics(reg prometheus.Registerer) *Metrics {
	out := &Metrics{
		Builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: `sqlt`,
			Name:      `builds_total`,
			Help:      `Number of query builds by result.`,
		}, []string{`result`}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: `sqlt`,
			Name:      `build_duration_seconds`,
			Help:      `Duration of query builds, including template parsing.`,
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}

	if reg != nil {
		reg.MustRegister(out.Builds, out.Duration)
	}
	return out
}

func (self *Metrics) observe(err error, seconds float64) {
	if self == nil {
		return
	}

	result := resultOk
	if err != nil {
		result = string(CodeOf(err))
		if result == `` {
			result = `unknown`
		}
	}

	self.Builds.WithLabelValues(result).Inc()
	self.Duration.Observe(seconds)
}
