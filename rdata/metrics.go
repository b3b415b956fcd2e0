package rdata

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/arloliu/rdagrid/errs"
)

// Copy results, used as the "result" label of the copies counter.
const (
	resultSuccess      = "success"
	resultInvalid      = "invalid"
	resultOpenFailed   = "open_failed"
	resultReadFailed   = "read_failed"
	resultWriteFailed  = "write_failed"
	resultCancelled    = "cancelled"
	resultReopenFailed = "reopen_failed"
)

// Metrics counts CreateCopy outcomes. A nil *Metrics records nothing.
type Metrics struct {
	copies         *prometheus.CounterVec
	bytesWritten   prometheus.Counter
	samplesWritten prometheus.Counter
	copyDuration   prometheus.Histogram
}

// NewMetrics registers the copy metrics with r.
func NewMetrics(r prometheus.Registerer) *Metrics {
	return &Metrics{
		copies: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Name: "rdagrid_rdata_copies_total",
			Help: "Total number of CreateCopy calls by result.",
		}, []string{"result"}),
		bytesWritten: promauto.With(r).NewCounter(prometheus.CounterOpts{
			Name: "rdagrid_rdata_written_bytes_total",
			Help: "Total number of serialized bytes written before compression.",
		}),
		samplesWritten: promauto.With(r).NewCounter(prometheus.CounterOpts{
			Name: "rdagrid_rdata_written_samples_total",
			Help: "Total number of raster samples written.",
		}),
		copyDuration: promauto.With(r).NewHistogram(prometheus.HistogramOpts{
			Name:    "rdagrid_rdata_copy_duration_seconds",
			Help:    "Time taken by CreateCopy, including the reopen.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) observeCopy(err error, stats writeStats, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.copies.WithLabelValues(resultLabel(err)).Inc()
	m.bytesWritten.Add(float64(stats.bytes))
	m.samplesWritten.Add(float64(stats.samples))
	m.copyDuration.Observe(elapsed.Seconds())
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return resultSuccess
	case errors.Is(err, errs.ErrUserInterrupted):
		return resultCancelled
	case errors.Is(err, errs.ErrReadFailed):
		return resultReadFailed
	case errors.Is(err, errs.ErrWriteFailed):
		return resultWriteFailed
	case errors.Is(err, errs.ErrOpenFailed):
		return resultOpenFailed
	case errors.Is(err, errs.ErrReopenFailed):
		return resultReopenFailed
	default:
		return resultInvalid
	}
}
