// Package metrics builds the tally scope of the process. Values are reported
// through zerolog at debug level when the scope is flushed.
package metrics

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/uber-go/tally/v4"
)

type logReporter struct {
	log zerolog.Logger
}

// NewScope returns a root scope reporting to logger every interval and once
// more when closed. A zero interval reports only on close.
func NewScope(logger zerolog.Logger, interval time.Duration) (tally.Scope, io.Closer) {
	return tally.NewRootScope(tally.ScopeOptions{
		Prefix:   "hbnb",
		Reporter: &logReporter{log: logger.With().Str("component", "metrics").Logger()},
	}, interval)
}

func (r *logReporter) Capabilities() tally.Capabilities { return r }

func (r *logReporter) Reporting() bool { return true }

func (r *logReporter) Tagging() bool { return true }

func (r *logReporter) Flush() {}

func (r *logReporter) ReportCounter(name string, tags map[string]string, value int64) {
	r.log.Debug().Str("metric", name).Fields(tagFields(tags)).Int64("count", value).Msg("counter")
}

func (r *logReporter) ReportGauge(name string, tags map[string]string, value float64) {
	r.log.Debug().Str("metric", name).Fields(tagFields(tags)).Float64("value", value).Msg("gauge")
}

func (r *logReporter) ReportTimer(name string, tags map[string]string, interval time.Duration) {
	r.log.Debug().Str("metric", name).Fields(tagFields(tags)).Dur("duration", interval).Msg("timer")
}

func (r *logReporter) ReportHistogramValueSamples(
	name string,
	tags map[string]string,
	_ tally.Buckets,
	bucketLowerBound, bucketUpperBound float64,
	samples int64,
) {
	r.log.Debug().Str("metric", name).Fields(tagFields(tags)).
		Float64("lower", bucketLowerBound).Float64("upper", bucketUpperBound).
		Int64("samples", samples).Msg("histogram")
}

func (r *logReporter) ReportHistogramDurationSamples(
	name string,
	tags map[string]string,
	_ tally.Buckets,
	bucketLowerBound, bucketUpperBound time.Duration,
	samples int64,
) {
	r.log.Debug().Str("metric", name).Fields(tagFields(tags)).
		Dur("lower", bucketLowerBound).Dur("upper", bucketUpperBound).
		Int64("samples", samples).Msg("histogram")
}

func tagFields(tags map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}
