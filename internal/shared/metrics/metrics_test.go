package metrics

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	var buf bytes.Buffer
	writeHistogram(&buf, "x", "help", h.Snapshot())
	out := buf.String()
	for _, want := range []string{
		`x_bucket{le="10"} 1`,
		`x_bucket{le="100"} 2`,
		`x_bucket{le="+Inf"} 3`,
		`x_sum 555`,
		`x_count 3`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in\n%s", want, out)
		}
	}
}

func TestHandlerRendersCounters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	IncExportGated()
	IncExport("docx", "ok")
	IncExport("pdf", "error")
	IncAssistFallback("skills")
	ObserveExportDuration(3 * time.Millisecond)

	r := gin.New()
	r.GET("/metrics", Handler())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"export_gated_total ",
		`exports_total{kind="docx",result="ok"}`,
		`exports_total{kind="pdf",result="error"}`,
		`assist_fallback_total{op="skills"}`,
		"export_duration_ms_count ",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in\n%s", want, body)
		}
	}
}
