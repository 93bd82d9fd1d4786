package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	goCred "github.com/MrEthical07/goCred"
	"github.com/MrEthical07/goCred/metrics/export/internaldefs"
)

type fakeSource struct {
	snapshot goCred.MetricsSnapshot
	dropped  uint64
}

func (f fakeSource) MetricsSnapshot() goCred.MetricsSnapshot { return f.snapshot }
func (f fakeSource) AuditDropped() uint64                    { return f.dropped }

func sampleSource() fakeSource {
	return fakeSource{
		snapshot: goCred.MetricsSnapshot{
			Counters: map[goCred.MetricID]uint64{
				goCred.MetricSignSuccess: 7,
			},
			Histograms: map[goCred.MetricID][]uint64{
				goCred.MetricHashLatency: {1, 2, 3, 4, 5, 6, 7, 8},
			},
		},
		dropped: 2,
	}
}

func TestRenderEmptyWhenMetricsDisabled(t *testing.T) {
	exp := NewExporterFromSource(fakeSource{
		snapshot: goCred.MetricsSnapshot{
			Counters:   map[goCred.MetricID]uint64{},
			Histograms: map[goCred.MetricID][]uint64{},
		},
	})

	if got := exp.Render(); got != "" {
		t.Fatalf("expected empty output for disabled metrics, got:\n%s", got)
	}
}

func TestRenderDeterministicIncludesCounterAndHistogram(t *testing.T) {
	out := NewExporterFromSource(sampleSource()).Render()

	for _, want := range []string{
		"gocred_sign_success_total 7",
		"gocred_hash_latency_seconds_bucket{le=\"0.005\"} 1",
		"gocred_hash_latency_seconds_bucket{le=\"+Inf\"} 36",
		"gocred_hash_latency_seconds_count 36",
		"gocred_audit_dropped_total 2",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestHandlerWritesPrometheusContentType(t *testing.T) {
	exp := NewExporterFromSource(sampleSource())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	exp.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/plain") {
		t.Fatalf("expected prometheus content type, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCollectorRegistersAndGathers(t *testing.T) {
	exp := NewExporterFromSource(sampleSource())
	reg := promclient.NewRegistry()
	if err := exp.Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}

	want := len(internaldefs.CounterDefs) + len(internaldefs.HistogramDefs) + 1
	if got := testutil.CollectAndCount(exp); got != want {
		t.Fatalf("expected %d metrics, got %d", want, got)
	}

	expected := `
# HELP gocred_sign_success_total Tokens signed.
# TYPE gocred_sign_success_total counter
gocred_sign_success_total 7
# HELP gocred_audit_dropped_total Dropped audit events due to dispatcher backpressure.
# TYPE gocred_audit_dropped_total counter
gocred_audit_dropped_total 2
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "gocred_sign_success_total", "gocred_audit_dropped_total"); err != nil {
		t.Fatalf("gather mismatch: %v", err)
	}
}

func TestCollectorHistogramIsCumulative(t *testing.T) {
	exp := NewExporterFromSource(sampleSource())

	expected := `
# HELP gocred_hash_latency_seconds bcrypt hash and compare latency.
# TYPE gocred_hash_latency_seconds histogram
gocred_hash_latency_seconds_bucket{le="0.005"} 1
gocred_hash_latency_seconds_bucket{le="0.01"} 3
gocred_hash_latency_seconds_bucket{le="0.025"} 6
gocred_hash_latency_seconds_bucket{le="0.05"} 10
gocred_hash_latency_seconds_bucket{le="0.1"} 15
gocred_hash_latency_seconds_bucket{le="0.25"} 21
gocred_hash_latency_seconds_bucket{le="0.5"} 28
gocred_hash_latency_seconds_bucket{le="+Inf"} 36
gocred_hash_latency_seconds_sum 0
gocred_hash_latency_seconds_count 36
`
	if err := testutil.CollectAndCompare(exp, strings.NewReader(expected), "gocred_hash_latency_seconds"); err != nil {
		t.Fatalf("histogram mismatch: %v", err)
	}
}

func TestCollectAgainstLiveToolkit(t *testing.T) {
	cfg := goCred.DefaultConfig()
	cfg.Password.Cost = 4
	tk, err := goCred.New().WithConfig(cfg).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer tk.Close()

	if _, err := tk.GenerateSignSecret(); err != nil {
		t.Fatalf("generate: %v", err)
	}

	reg := promclient.NewRegistry()
	if err := NewExporter(tk).Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	expected := `
# HELP gocred_secret_generated_total Sign secrets and random draws served.
# TYPE gocred_secret_generated_total counter
gocred_secret_generated_total 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "gocred_secret_generated_total"); err != nil {
		t.Fatalf("gather mismatch: %v", err)
	}
}

func BenchmarkRender(b *testing.B) {
	exp := NewExporterFromSource(sampleSource())

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = exp.Render()
	}
}
