package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/manas/internal/model"
)

// QuoteServiceInterface は日替わり名言の取得インターフェース。
type QuoteServiceInterface interface {
	Today(ctx context.Context) (model.DailyQuote, error)
}

// InsightServiceInterface はAIインサイト生成のインターフェース。
// エラーを返さず、失敗時は固定文言を返す。
type InsightServiceInterface interface {
	Insight(ctx context.Context, entries []model.MoodEntry) string
}

// MoodEntriesReader はインサイト生成のための気分ログ読み取りインターフェース。
type MoodEntriesReader interface {
	Entries(ctx context.Context) []model.MoodEntry
}

// DashboardHandler は名言・インサイトのHTTPハンドラー。
type DashboardHandler struct {
	quotes   QuoteServiceInterface
	insights InsightServiceInterface
	moods    MoodEntriesReader
}

// NewDashboardHandler はDashboardHandlerを生成する。
func NewDashboardHandler(quotes QuoteServiceInterface, insights InsightServiceInterface, moods MoodEntriesReader) *DashboardHandler {
	return &DashboardHandler{
		quotes:   quotes,
		insights: insights,
		moods:    moods,
	}
}

// Quote は今日の名言を返す。キャッシュがあれば再利用する。
// GET /api/quote
func (h *DashboardHandler) Quote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.quotes.Today(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

// Insight は気分ログに基づくAIインサイトを返す。
// GET /api/insight
func (h *DashboardHandler) Insight(w http.ResponseWriter, r *http.Request) {
	entries := h.moods.Entries(r.Context())
	insight := h.insights.Insight(r.Context(), entries)

	writeJSON(w, http.StatusOK, map[string]string{"insight": insight})
}
