package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/manas/internal/model"
)

// fakeQuoteService はQuoteServiceInterfaceのテスト用フェイク。
type fakeQuoteService struct {
	quote model.DailyQuote
	err   error
}

func (f *fakeQuoteService) Today(ctx context.Context) (model.DailyQuote, error) {
	return f.quote, f.err
}

// fakeInsightService はInsightServiceInterfaceのテスト用フェイク。
type fakeInsightService struct {
	insight    string
	gotEntries []model.MoodEntry
}

func (f *fakeInsightService) Insight(ctx context.Context, entries []model.MoodEntry) string {
	f.gotEntries = entries
	return f.insight
}

// TestDashboardHandler_Quote は今日の名言が返ることを検証する。
func TestDashboardHandler_Quote(t *testing.T) {
	quotes := &fakeQuoteService{
		quote: model.DailyQuote{
			Text:   "Peace comes from within.",
			Author: "Buddha",
			Date:   "2026-08-30",
		},
	}
	h := NewDashboardHandler(quotes, &fakeInsightService{}, &fakeMoodService{})

	req := httptest.NewRequest(http.MethodGet, "/api/quote", nil)
	w := httptest.NewRecorder()

	h.Quote(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp model.DailyQuote
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Text != "Peace comes from within." || resp.Author != "Buddha" {
		t.Errorf("quote = %+v", resp)
	}
}

// TestDashboardHandler_Quote_StoreError はストア障害時に500が返ることを検証する。
func TestDashboardHandler_Quote_StoreError(t *testing.T) {
	quotes := &fakeQuoteService{err: errors.New("store unavailable")}
	h := NewDashboardHandler(quotes, &fakeInsightService{}, &fakeMoodService{})

	req := httptest.NewRequest(http.MethodGet, "/api/quote", nil)
	w := httptest.NewRecorder()

	h.Quote(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

// TestDashboardHandler_Insight は気分ログがインサイト生成に渡り、結果が返ることを検証する。
func TestDashboardHandler_Insight(t *testing.T) {
	insights := &fakeInsightService{insight: "You're making steady progress."}
	moods := &fakeMoodService{entries: sampleEntries()}
	h := NewDashboardHandler(&fakeQuoteService{}, insights, moods)

	req := httptest.NewRequest(http.MethodGet, "/api/insight", nil)
	w := httptest.NewRecorder()

	h.Insight(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if len(insights.gotEntries) != 3 {
		t.Errorf("insight received %d entries, want 3", len(insights.gotEntries))
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["insight"] != "You're making steady progress." {
		t.Errorf("insight = %q", resp["insight"])
	}
}

// TestDashboardHandler_Insight_EmptyLog はログなしでも200で固定文言が返ることを検証する。
func TestDashboardHandler_Insight_EmptyLog(t *testing.T) {
	insights := &fakeInsightService{insight: "Start logging your mood to receive personalized AI insights."}
	h := NewDashboardHandler(&fakeQuoteService{}, insights, &fakeMoodService{})

	req := httptest.NewRequest(http.MethodGet, "/api/insight", nil)
	w := httptest.NewRecorder()

	h.Insight(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["insight"] == "" {
		t.Error("insight should not be empty")
	}
}
