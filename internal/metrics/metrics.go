// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// アシスタント・名言キャッシュ・ハンドラー層から利用する。
type MetricsCollector interface {
	RecordAssistantRequest(kind string)
	RecordAssistantFallback(kind string)
	RecordAssistantLatency(kind string, duration time.Duration)
	RecordQuoteCacheHit()
	RecordQuoteRefresh()
	RecordMoodEntryCreated()
	RecordHTTPStatus(statusCode int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	assistantRequests  *prometheus.CounterVec
	assistantFallbacks *prometheus.CounterVec
	assistantLatency   *prometheus.HistogramVec
	quoteCacheHits     prometheus.Counter
	quoteRefreshes     prometheus.Counter
	moodEntries        prometheus.Counter
	httpStatus         *prometheus.CounterVec
}

var _ MetricsCollector = (*Collector)(nil)

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		assistantRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "manas_assistant_requests_total",
			Help: "アシスタント生成リクエストの種別ごとの合計数",
		}, []string{"kind"}),
		assistantFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "manas_assistant_fallbacks_total",
			Help: "固定文言フォールバックの種別ごとの合計数",
		}, []string{"kind"}),
		assistantLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "manas_assistant_latency_seconds",
			Help:    "アシスタント生成のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		quoteCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "manas_quote_cache_hits_total",
			Help: "日替わり名言のキャッシュヒット合計数",
		}),
		quoteRefreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "manas_quote_refreshes_total",
			Help: "日替わり名言の再生成合計数",
		}),
		moodEntries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "manas_mood_entries_created_total",
			Help: "作成された気分エントリの合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "manas_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.assistantRequests,
		c.assistantFallbacks,
		c.assistantLatency,
		c.quoteCacheHits,
		c.quoteRefreshes,
		c.moodEntries,
		c.httpStatus,
	)

	return c
}

// RecordAssistantRequest はアシスタント生成リクエストを記録する。
// kindはchat/quote/insightのいずれか。
func (c *Collector) RecordAssistantRequest(kind string) {
	c.assistantRequests.WithLabelValues(kind).Inc()
}

// RecordAssistantFallback は固定文言フォールバックの発生を記録する。
func (c *Collector) RecordAssistantFallback(kind string) {
	c.assistantFallbacks.WithLabelValues(kind).Inc()
}

// RecordAssistantLatency はアシスタント生成のレイテンシを記録する。
func (c *Collector) RecordAssistantLatency(kind string, duration time.Duration) {
	c.assistantLatency.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordQuoteCacheHit は名言キャッシュヒットを記録する。
func (c *Collector) RecordQuoteCacheHit() {
	c.quoteCacheHits.Inc()
}

// RecordQuoteRefresh は名言の再生成を記録する。
func (c *Collector) RecordQuoteRefresh() {
	c.quoteRefreshes.Inc()
}

// RecordMoodEntryCreated は気分エントリの作成を記録する。
func (c *Collector) RecordMoodEntryCreated() {
	c.moodEntries.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
