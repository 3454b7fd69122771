package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TestNewCollector_ReturnsNonNil はCollectorが正常に生成されることを検証する。
func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

// カウンタ値をレジストリから取り出すヘルパー。ラベルなしメトリクス用。
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("%s metric not found", name)
	return 0
}

// TestRecordAssistantRequest_IncrementsByKind は種別ラベル付きカウンタが増加することを検証する。
func TestRecordAssistantRequest_IncrementsByKind(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordAssistantRequest("chat")
	c.RecordAssistantRequest("chat")
	c.RecordAssistantRequest("insight")

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metrics {
		if mf.GetName() == "manas_assistant_requests_total" {
			found = true
			if len(mf.GetMetric()) != 2 {
				t.Fatalf("expected 2 label combinations, got %d", len(mf.GetMetric()))
			}
			for _, m := range mf.GetMetric() {
				label := m.GetLabel()[0].GetValue()
				val := m.GetCounter().GetValue()
				switch label {
				case "chat":
					if val != 2 {
						t.Errorf("requests_total{kind=chat} = %v, want 2", val)
					}
				case "insight":
					if val != 1 {
						t.Errorf("requests_total{kind=insight} = %v, want 1", val)
					}
				default:
					t.Errorf("unexpected label value: %s", label)
				}
			}
		}
	}
	if !found {
		t.Error("manas_assistant_requests_total metric not found")
	}
}

// TestRecordAssistantLatency_ObservesHistogram はレイテンシのヒストグラムに値が記録されることを検証する。
func TestRecordAssistantLatency_ObservesHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordAssistantLatency("chat", 100*time.Millisecond)
	c.RecordAssistantLatency("chat", 2*time.Second)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metrics {
		if mf.GetName() == "manas_assistant_latency_seconds" {
			found = true
			h := mf.GetMetric()[0].GetHistogram()
			if h.GetSampleCount() != 2 {
				t.Errorf("sample_count = %d, want 2", h.GetSampleCount())
			}
			// 合計は0.1 + 2.0 = 2.1秒
			if h.GetSampleSum() < 2.0 || h.GetSampleSum() > 2.2 {
				t.Errorf("sample_sum = %v, want ~2.1", h.GetSampleSum())
			}
		}
	}
	if !found {
		t.Error("manas_assistant_latency_seconds metric not found")
	}
}

// TestQuoteCounters は名言キャッシュのカウンタを検証する。
func TestQuoteCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordQuoteCacheHit()
	c.RecordQuoteCacheHit()
	c.RecordQuoteRefresh()

	if got := counterValue(t, reg, "manas_quote_cache_hits_total"); got != 2 {
		t.Errorf("quote_cache_hits_total = %v, want 2", got)
	}
	if got := counterValue(t, reg, "manas_quote_refreshes_total"); got != 1 {
		t.Errorf("quote_refreshes_total = %v, want 1", got)
	}
}

// TestRecordMoodEntryCreated_IncrementsCounter は気分エントリ作成カウンタが増加することを検証する。
func TestRecordMoodEntryCreated_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordMoodEntryCreated()
	c.RecordMoodEntryCreated()
	c.RecordMoodEntryCreated()

	if got := counterValue(t, reg, "manas_mood_entries_created_total"); got != 3 {
		t.Errorf("mood_entries_created_total = %v, want 3", got)
	}
}

// TestRecordHTTPStatus_IncrementsCounterWithLabel はHTTPステータスカウンタがラベル付きで増加することを検証する。
func TestRecordHTTPStatus_IncrementsCounterWithLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(409)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metrics {
		if mf.GetName() == "manas_http_status_total" {
			found = true
			if len(mf.GetMetric()) != 2 {
				t.Fatalf("expected 2 label combinations, got %d", len(mf.GetMetric()))
			}
			for _, m := range mf.GetMetric() {
				label := m.GetLabel()[0].GetValue()
				val := m.GetCounter().GetValue()
				switch label {
				case "200":
					if val != 2 {
						t.Errorf("http_status_total{status_code=200} = %v, want 2", val)
					}
				case "409":
					if val != 1 {
						t.Errorf("http_status_total{status_code=409} = %v, want 1", val)
					}
				default:
					t.Errorf("unexpected label value: %s", label)
				}
			}
		}
	}
	if !found {
		t.Error("manas_http_status_total metric not found")
	}
}

// TestMetricsHandler_ReturnsPrometheusFormat は/metricsエンドポイントがPrometheus形式で返すことを検証する。
func TestMetricsHandler_ReturnsPrometheusFormat(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	// いくつかのメトリクスを記録
	c.RecordAssistantRequest("chat")
	c.RecordAssistantFallback("quote")
	c.RecordAssistantLatency("insight", 500*time.Millisecond)
	c.RecordQuoteRefresh()
	c.RecordMoodEntryCreated()
	c.RecordHTTPStatus(200)

	handler := Handler(reg)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, _ := io.ReadAll(resp.Body)
	bodyStr := string(body)

	// Prometheus形式のメトリクスが含まれていることを確認
	expectedMetrics := []string{
		"manas_assistant_requests_total",
		"manas_assistant_fallbacks_total",
		"manas_assistant_latency_seconds",
		"manas_quote_refreshes_total",
		"manas_mood_entries_created_total",
		"manas_http_status_total",
	}

	for _, metric := range expectedMetrics {
		if !strings.Contains(bodyStr, metric) {
			t.Errorf("response body does not contain %q", metric)
		}
	}
}

// TestCollector_ImplementsMetricsCollectorInterface はCollectorがMetricsCollectorインターフェースを実装することを検証する。
func TestCollector_ImplementsMetricsCollectorInterface(t *testing.T) {
	reg := prometheus.NewRegistry()
	var _ MetricsCollector = NewCollector(reg)
}

// TestMultipleCollectors_IndependentRegistries は異なるレジストリで独立に動作することを検証する。
func TestMultipleCollectors_IndependentRegistries(t *testing.T) {
	reg1 := prometheus.NewRegistry()
	reg2 := prometheus.NewRegistry()
	c1 := NewCollector(reg1)
	c2 := NewCollector(reg2)

	c1.RecordMoodEntryCreated()
	c2.RecordMoodEntryCreated()
	c2.RecordMoodEntryCreated()

	if got := counterValue(t, reg1, "manas_mood_entries_created_total"); got != 1 {
		t.Errorf("reg1 mood_entries = %v, want 1", got)
	}
	if got := counterValue(t, reg2, "manas_mood_entries_created_total"); got != 2 {
		t.Errorf("reg2 mood_entries = %v, want 2", got)
	}
}
