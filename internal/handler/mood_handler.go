package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hitoshi/manas/internal/model"
)

// デフォルトの直近エントリ取得件数。ホームのトレンドグラフと同じ窓。
const defaultRecentCount = 7

// MoodServiceInterface は気分ログハンドラーが必要とするサービスインターフェース。
type MoodServiceInterface interface {
	Add(ctx context.Context, moodValue string, stressLevel int, note string) (*model.MoodEntry, error)
	Entries(ctx context.Context) []model.MoodEntry
	EntriesNewestFirst(ctx context.Context) []model.MoodEntry
	Recent(ctx context.Context, n int) []model.MoodEntry
	AverageStress(ctx context.Context) float64
}

// HomeNavigator は気分記録後のホーム画面遷移を抽象化する。
type HomeNavigator interface {
	NavigateHome()
}

// MoodMetricsRecorder は気分エントリ作成のメトリクス記録を抽象化する。
type MoodMetricsRecorder interface {
	RecordMoodEntryCreated()
}

// MoodHandler は気分ログ関連のHTTPハンドラー。
type MoodHandler struct {
	service   MoodServiceInterface
	navigator HomeNavigator
	metrics   MoodMetricsRecorder
}

// NewMoodHandler はMoodHandlerを生成する。
func NewMoodHandler(service MoodServiceInterface, navigator HomeNavigator, metrics MoodMetricsRecorder) *MoodHandler {
	return &MoodHandler{
		service:   service,
		navigator: navigator,
		metrics:   metrics,
	}
}

type createMoodRequest struct {
	Mood        string `json:"mood"`
	StressLevel int    `json:"stressLevel"`
	Note        string `json:"note"`
}

type moodSummaryResponse struct {
	Count         int               `json:"count"`
	AverageStress float64           `json:"averageStress"`
	Trend         []model.MoodEntry `json:"trend"`
}

// Create は気分エントリを記録する。
// 成功時はホーム画面へ遷移する。
// POST /api/moods
func (h *MoodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	entry, err := h.service.Add(r.Context(), req.Mood, req.StressLevel, req.Note)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordMoodEntryCreated()
	h.navigator.NavigateHome()

	writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})
}

// List は全エントリを新しい順で返す。
// GET /api/moods
func (h *MoodHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := h.service.EntriesNewestFirst(r.Context())
	if entries == nil {
		entries = []model.MoodEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// Recent は直近のエントリを古い順で返す。
// GET /api/moods/recent?n=7
func (h *MoodHandler) Recent(w http.ResponseWriter, r *http.Request) {
	n := defaultRecentCount
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
			return
		}
		n = parsed
	}

	entries := h.service.Recent(r.Context(), n)
	if entries == nil {
		entries = []model.MoodEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// Summary はエントリ数・平均ストレス・トレンド窓を返す。
// GET /api/moods/summary
func (h *MoodHandler) Summary(w http.ResponseWriter, r *http.Request) {
	entries := h.service.Entries(r.Context())
	trend := h.service.Recent(r.Context(), defaultRecentCount)
	if trend == nil {
		trend = []model.MoodEntry{}
	}

	writeJSON(w, http.StatusOK, moodSummaryResponse{
		Count:         len(entries),
		AverageStress: h.service.AverageStress(r.Context()),
		Trend:         trend,
	})
}
