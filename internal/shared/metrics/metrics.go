// Package metrics keeps in-process export and assist counters and renders
// them in the Prometheus text format.
package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	exportGatedTotal atomic.Uint64
	exports          = newCounterVec()
	assistFallbacks  = newCounterVec()

	exportDuration = newHistogram([]float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000})
)

// IncExportGated counts export requests that stopped at the confirmation step.
func IncExportGated() {
	exportGatedTotal.Add(1)
}

// IncExport counts a finished export attempt. result is "ok" or "error".
func IncExport(kind, result string) {
	exports.inc(kind + "|" + result)
}

// IncAssistFallback counts assist operations answered by their fallback value.
func IncAssistFallback(op string) {
	assistFallbacks.inc(op)
}

// ObserveExportDuration records how long an artifact took to produce.
func ObserveExportDuration(d time.Duration) {
	ms := float64(d) / float64(time.Millisecond)
	if ms < 0 {
		ms = 0
	}
	exportDuration.Observe(ms)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "export_gated_total", "Export requests waiting for confirmation", exportGatedTotal.Load())

	fmt.Fprintf(&buf, "# HELP exports_total Exports finished by kind and result\n")
	fmt.Fprintf(&buf, "# TYPE exports_total counter\n")
	for _, e := range exports.snapshot() {
		kind, result := splitKey(e.key)
		fmt.Fprintf(&buf, "exports_total{kind=%q,result=%q} %d\n", kind, result, e.value)
	}

	fmt.Fprintf(&buf, "# HELP assist_fallback_total Assist operations answered by a fallback\n")
	fmt.Fprintf(&buf, "# TYPE assist_fallback_total counter\n")
	for _, e := range assistFallbacks.snapshot() {
		fmt.Fprintf(&buf, "assist_fallback_total{op=%q} %d\n", e.key, e.value)
	}

	writeHistogram(&buf, "export_duration_ms", "Export duration in milliseconds", exportDuration.Snapshot())
	return buf.String()
}

type counterVec struct {
	mu     sync.Mutex
	values map[string]uint64
}

type counterEntry struct {
	key   string
	value uint64
}

func newCounterVec() *counterVec {
	return &counterVec{values: make(map[string]uint64)}
}

func (v *counterVec) inc(key string) {
	v.mu.Lock()
	v.values[key]++
	v.mu.Unlock()
}

// snapshot returns entries in key order so output is stable.
func (v *counterVec) snapshot() []counterEntry {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]counterEntry, 0, len(v.values))
	for k, n := range v.values {
		out = append(out, counterEntry{key: k, value: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}

func splitKey(key string) (string, string) {
	for i := 0; i < len(key); i++ {
		if key[i] == '|' {
			return key[:i], key[i+1:]
		}
	}
	return key, ""
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

// writeHistogram emits cumulative buckets; counts hold per-bucket hits.
func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
