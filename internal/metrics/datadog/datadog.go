// Package datadog implements a Datadog backend for the internal/metrics package.
//
// NOTE ABOUT FLUSHING:
// Invoice batches range from a single document to directory sweeps that run
// for minutes. Submitting only once at process exit makes dashboards awkward
// for the long runs (a single spike rather than a time series), so the
// backend:
//   - buffers observations in-memory (fast, lock-protected)
//   - periodically Flush()es on a ticker (default: once per minute)
//   - Flush()es one final time on Close()
//
// Concurrency model:
//   - worker goroutines can call IncCounter/ObserveHistogram at any time
//   - Flush snapshots+resets buffers under a mutex, then submits out-of-lock
//   - the flush loop calls Flush() periodically; Close() stops the loop
//
// If the process is killed with SIGKILL/OOM, Close() won't run.
package datadog

import (
	"context"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"invoicetl/internal/metrics"

	dd "github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
)

// Options controls Datadog backend configuration.
type Options struct {
	// JobName becomes tag "job:<name>" on every metric.
	// If empty, defaults to "invoicetl".
	JobName string

	// Tags are extra Datadog tags (e.g. []string{"env:prod", "service:invoicetl"}).
	Tags []string

	// FlushEvery controls how often buffered metrics are submitted.
	// If <= 0, defaults to 60 seconds.
	FlushEvery time.Duration

	// The following fields are unexported test seams. Production code
	// never sets them; unit tests set them to avoid real network
	// submission and nondeterministic clocks/tickers.
	now       func() time.Time
	newTicker func(d time.Duration) *time.Ticker
	submitter metricsSubmitter
}

// metricsSubmitter is the minimal interface needed to submit metrics.
//
// The Datadog SDK exposes a concrete *datadogV2.MetricsApi, which cannot
// be stubbed without real HTTP. Backend depends on this interface instead,
// enabling deterministic tests with a fake submitter.
type metricsSubmitter interface {
	SubmitMetrics(ctx context.Context, body datadogV2.MetricPayload, params ...datadogV2.SubmitMetricsOptionalParameters) (datadogV2.IntakePayloadAccepted, *http.Response, error)
}

// Backend implements metrics.Backend for Datadog.
type Backend struct {
	api metricsSubmitter
	ctx context.Context

	flushEvery time.Duration
	stopCh     chan struct{}
	doneCh     chan struct{}

	baseTags []string

	// now and newTicker are injected for deterministic tests.
	// Production uses time.Now and time.NewTicker.
	now       func() time.Time
	newTicker func(d time.Duration) *time.Ticker

	mu sync.Mutex

	docCounts    map[string]float64 // vendor\x00status -> count
	rowCounts    map[string]float64 // vendor -> count
	parseSamples map[string][]float64
}

func resolveEnvTag() string {
	if v := strings.TrimSpace(os.Getenv("ENV")); v != "" {
		return "env:" + v
	}
	if v := strings.TrimSpace(os.Getenv("DD_ENV")); v != "" {
		return "env:" + v
	}
	return "env:unknown"
}

func (b *Backend) loop() {
	defer close(b.doneCh)

	t := b.newTicker(b.flushEvery)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			_ = b.Flush()
		case <-b.stopCh:
			return
		}
	}
}

// Close stops the background flush loop and performs one final Flush().
// Close once; a second call panics on the already-closed stop channel.
func (b *Backend) Close() error {
	close(b.stopCh)
	<-b.doneCh
	return b.Flush()
}

// NewBackend constructs a Datadog backend using the official client.
//
// Edge cases:
//   - If opts.FlushEvery <= 0, defaults to 60s.
//   - If opts.JobName is empty, defaults to "invoicetl".
//   - Environment tag selection uses ENV then DD_ENV, otherwise env:unknown.
//
// Client construction itself is not expected to fail; network errors
// surface from Flush().
func NewBackend(parent context.Context, opts Options) (*Backend, error) {
	job := opts.JobName
	if job == "" {
		job = "invoicetl"
	}

	flushEvery := opts.FlushEvery
	if flushEvery <= 0 {
		flushEvery = 60 * time.Second
	}

	baseTags := make([]string, 0, 2+len(opts.Tags))
	baseTags = append(baseTags, resolveEnvTag(), "job:"+job)
	baseTags = append(baseTags, opts.Tags...)

	nowFn := opts.now
	if nowFn == nil {
		nowFn = time.Now
	}
	newTicker := opts.newTicker
	if newTicker == nil {
		newTicker = time.NewTicker
	}

	submitter := opts.submitter
	if submitter == nil {
		cfg := dd.NewConfiguration()
		client := dd.NewAPIClient(cfg)
		submitter = datadogV2.NewMetricsApi(client)
	}

	b := &Backend{
		api:        submitter,
		ctx:        dd.NewDefaultContext(parent),
		flushEvery: flushEvery,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),

		baseTags: baseTags,

		now:       nowFn,
		newTicker: newTicker,

		docCounts:    make(map[string]float64),
		rowCounts:    make(map[string]float64),
		parseSamples: make(map[string][]float64),
	}

	go b.loop()
	return b, nil
}

// IncCounter implements metrics.Backend.
func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	if delta <= 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch name {
	case metrics.DocsTotal:
		b.docCounts[vendorStatusKey(labels["vendor"], labels["status"])] += delta

	case metrics.RowsTotal:
		vendor := labels["vendor"]
		if vendor == "" {
			vendor = "unknown"
		}
		b.rowCounts[vendor] += delta

	default:
		// Ignore unknown metrics.
	}
}

// ObserveHistogram implements metrics.Backend.
func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if value < 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch name {
	case metrics.ParseDuration:
		vendor := labels["vendor"]
		if vendor == "" {
			vendor = "unknown"
		}
		b.parseSamples[vendor] = append(b.parseSamples[vendor], value)

	default:
		// Ignore unknown histograms.
	}
}

// snapshot is the buffered metric state used to build one flush payload.
// Flush() must reset buffers under a lock but submit out-of-lock; the
// snapshot separates collect+reset from payload building+submission.
type snapshot struct {
	docCounts    map[string]float64
	rowCounts    map[string]float64
	parseSamples map[string][]float64
}

// snapshotAndReset grabs current buffers and resets them. Call with no
// lock held; the returned maps are detached.
func (b *Backend) snapshotAndReset() snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := snapshot{
		docCounts:    b.docCounts,
		rowCounts:    b.rowCounts,
		parseSamples: b.parseSamples,
	}

	b.docCounts = make(map[string]float64)
	b.rowCounts = make(map[string]float64)
	b.parseSamples = make(map[string][]float64)

	return s
}

func (s snapshot) isEmpty() bool {
	return len(s.docCounts) == 0 &&
		len(s.rowCounts) == 0 &&
		len(s.parseSamples) == 0
}

// Flush submits buffered metrics to Datadog and resets local buffers.
//
// Buffers are reset even if submission fails, to keep the pipeline fast
// and avoid blocking future writes. Returns nil when there is nothing
// to submit.
func (b *Backend) Flush() error {
	snap := b.snapshotAndReset()
	if snap.isEmpty() {
		return nil
	}

	series := b.buildSeries(snap, b.now().Unix())
	payload := datadogV2.MetricPayload{Series: series}

	_, _, err := b.api.SubmitMetrics(b.ctx, payload, *datadogV2.NewSubmitMetricsOptionalParameters())
	return err
}

// buildSeries constructs Datadog series for a snapshot at a fixed
// timestamp. It is pure (no locks, no network, no clocks), which keeps
// the naming/tagging contract easy to unit test.
func (b *Backend) buildSeries(s snapshot, nowUnix int64) []datadogV2.MetricSeries {
	series := make([]datadogV2.MetricSeries, 0, len(s.docCounts)+len(s.rowCounts)+8)

	for k, v := range s.docCounts {
		if v == 0 {
			continue
		}
		vendor, status := splitVendorStatusKey(k)
		tags := withTags(b.baseTags, "vendor:"+vendor, "status:"+status)
		series = append(series, countSeries("invoices.docs.total", v, tags, nowUnix))
	}

	for vendor, v := range s.rowCounts {
		if v == 0 {
			continue
		}
		tags := withTags(b.baseTags, "vendor:"+vendor)
		series = append(series, countSeries("invoices.rows.total", v, tags, nowUnix))
	}

	for vendor, samples := range s.parseSamples {
		addPercentiles(&series, b.baseTags, "invoices.parse.duration_seconds", vendor, samples, nowUnix)
	}

	return series
}

// addPercentiles appends a fixed set of percentile gauges for a sample
// set. Does nothing for an empty set; sorts a copy of samples.
func addPercentiles(series *[]datadogV2.MetricSeries, baseTags []string, metricPrefix, vendor string, samples []float64, nowUnix int64) {
	if len(samples) == 0 {
		return
	}
	cp := append([]float64(nil), samples...)
	sort.Float64s(cp)

	tags := withTags(baseTags, "vendor:"+vendor)

	*series = append(*series, gaugeSeries(metricPrefix+".p50", percentileNearestRank(cp, 0.50), tags, nowUnix))
	*series = append(*series, gaugeSeries(metricPrefix+".p90", percentileNearestRank(cp, 0.90), tags, nowUnix))
	*series = append(*series, gaugeSeries(metricPrefix+".p95", percentileNearestRank(cp, 0.95), tags, nowUnix))
	*series = append(*series, gaugeSeries(metricPrefix+".p99", percentileNearestRank(cp, 0.99), tags, nowUnix))
	*series = append(*series, gaugeSeries(metricPrefix+".max", cp[len(cp)-1], tags, nowUnix))
	*series = append(*series, gaugeSeries(metricPrefix+".samples", float64(len(cp)), tags, nowUnix))
}

func countSeries(metric string, value float64, tags []string, nowUnix int64) datadogV2.MetricSeries {
	return datadogV2.MetricSeries{
		Metric: metric,
		Type:   datadogV2.METRICINTAKETYPE_COUNT.Ptr(),
		Points: []datadogV2.MetricPoint{
			{Timestamp: dd.PtrInt64(nowUnix), Value: dd.PtrFloat64(value)},
		},
		Tags: tags,
	}
}

func gaugeSeries(metric string, value float64, tags []string, nowUnix int64) datadogV2.MetricSeries {
	return datadogV2.MetricSeries{
		Metric: metric,
		Type:   datadogV2.METRICINTAKETYPE_GAUGE.Ptr(),
		Points: []datadogV2.MetricPoint{
			{Timestamp: dd.PtrInt64(nowUnix), Value: dd.PtrFloat64(value)},
		},
		Tags: tags,
	}
}

func vendorStatusKey(vendor, status string) string {
	if vendor == "" {
		vendor = "unknown"
	}
	if status == "" {
		status = "unknown"
	}
	return vendor + "\x00" + status
}

func splitVendorStatusKey(k string) (vendor, status string) {
	parts := strings.SplitN(k, "\x00", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return k, "unknown"
}

func withTags(base []string, extras ...string) []string {
	out := make([]string, 0, len(base)+len(extras))
	out = append(out, base...)
	out = append(out, extras...)
	return out
}

func percentileNearestRank(s []float64, p float64) float64 {
	n := len(s)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return s[0]
	}
	if p >= 1 {
		return s[n-1]
	}
	idx := int(p*float64(n-1) + 0.5)
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return s[idx]
}

var _ metrics.Backend = (*Backend)(nil)

// ParseTagsCSV parses comma-separated tags like "env:prod,service:invoicetl".
func ParseTagsCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
