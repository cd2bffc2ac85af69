// Package stats collects per-manager request statistics: success and
// failure counts plus an HDR histogram of call latencies for accurate
// percentiles.
package stats

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	// Histogram range: 1 microsecond to 1 hour, 3 significant figures.
	histogramMin     = 1
	histogramMax     = 3600000000
	histogramSigFigs = 3
)

// Recorder accumulates the outcome of every call routed through a
// manager. It is safe for concurrent use: counters use atomics, the
// histogram is mutex protected.
type Recorder struct {
	histMu sync.Mutex
	hist   *hdrhistogram.Histogram

	methodMu    sync.RWMutex
	methodCount map[string]int64

	total     atomic.Int64
	success   atomic.Int64
	failed    atomic.Int64
	clientErr atomic.Int64
	serverErr atomic.Int64

	started time.Time
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		hist:        hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs),
		methodCount: make(map[string]int64),
		started:     time.Now(),
	}
}

// Record registers one completed call. A call counts as a success when
// it produced a response, whatever the status code; failed marks calls
// that yielded no response at all.
func (r *Recorder) Record(method string, statusCode int, elapsed time.Duration, failed bool) {
	micros := elapsed.Microseconds()
	if micros < histogramMin {
		micros = histogramMin
	}
	if micros > histogramMax {
		micros = histogramMax
	}

	r.histMu.Lock()
	// RecordValue is not thread-safe; hold the lock.
	_ = r.hist.RecordValue(micros)
	r.histMu.Unlock()

	r.methodMu.Lock()
	r.methodCount[method]++
	r.methodMu.Unlock()

	r.total.Add(1)
	if failed {
		r.failed.Add(1)
	} else {
		r.success.Add(1)
	}
	switch {
	case statusCode >= 400 && statusCode < 500:
		r.clientErr.Add(1)
	case statusCode >= 500 && statusCode < 600:
		r.serverErr.Add(1)
	}
}

// Snapshot is a point-in-time view of the collected statistics.
// Latency fields are zero when no calls were recorded.
type Snapshot struct {
	Total        int64
	Success      int64
	Failed       int64
	ClientErrors int64
	ServerErrors int64
	ByMethod     map[string]int64
	MinLatency   time.Duration
	MaxLatency   time.Duration
	Mean         time.Duration
	P50          time.Duration
	P90          time.Duration
	P99          time.Duration
	Since        time.Time
}

// Snapshot returns the current statistics. The recorder keeps
// accumulating afterwards.
func (r *Recorder) Snapshot() Snapshot {
	s := Snapshot{
		Total:        r.total.Load(),
		Success:      r.success.Load(),
		Failed:       r.failed.Load(),
		ClientErrors: r.clientErr.Load(),
		ServerErrors: r.serverErr.Load(),
	}

	r.methodMu.RLock()
	s.ByMethod = make(map[string]int64, len(r.methodCount))
	for method, count := range r.methodCount {
		s.ByMethod[method] = count
	}
	r.methodMu.RUnlock()

	r.histMu.Lock()
	defer r.histMu.Unlock()
	s.Since = r.started
	if r.hist.TotalCount() == 0 {
		return s
	}
	s.MinLatency = time.Duration(r.hist.Min()) * time.Microsecond
	s.MaxLatency = time.Duration(r.hist.Max()) * time.Microsecond
	s.Mean = time.Duration(r.hist.Mean()) * time.Microsecond
	s.P50 = time.Duration(r.hist.ValueAtQuantile(50)) * time.Microsecond
	s.P90 = time.Duration(r.hist.ValueAtQuantile(90)) * time.Microsecond
	s.P99 = time.Duration(r.hist.ValueAtQuantile(99)) * time.Microsecond
	return s
}

// Reset clears all collected statistics.
func (r *Recorder) Reset() {
	r.histMu.Lock()
	r.hist.Reset()
	r.started = time.Now()
	r.histMu.Unlock()

	r.methodMu.Lock()
	r.methodCount = make(map[string]int64)
	r.methodMu.Unlock()

	r.total.Store(0)
	r.success.Store(0)
	r.failed.Store(0)
	r.clientErr.Store(0)
	r.serverErr.Store(0)
}
