package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/manas/internal/content"
)

// fakeArticleService はArticleServiceInterfaceのテスト用フェイク。
type fakeArticleService struct {
	articles []content.Article
}

func (f *fakeArticleService) Articles() []content.Article {
	return f.articles
}

// TestContentHandler_Resources は固定カタログの全リソースが返ることを検証する。
func TestContentHandler_Resources(t *testing.T) {
	h := NewContentHandler(&fakeArticleService{})

	req := httptest.NewRequest(http.MethodGet, "/api/resources", nil)
	w := httptest.NewRecorder()

	h.Resources(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Resources []content.Resource `json:"resources"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Resources) != 7 {
		t.Fatalf("len(resources) = %d, want 7", len(resp.Resources))
	}

	// 緊急リソースが先頭にあること
	if !resp.Resources[0].Urgent {
		t.Errorf("first resource should be urgent: %+v", resp.Resources[0])
	}
}

// TestContentHandler_Articles は記事一覧が返ることを検証する。
func TestContentHandler_Articles(t *testing.T) {
	articles := []content.Article{
		{ID: "a1", Title: "Managing Stress", Category: "Wellness"},
	}
	h := NewContentHandler(&fakeArticleService{articles: articles})

	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	w := httptest.NewRecorder()

	h.Articles(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Articles []content.Article `json:"articles"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Articles) != 1 || resp.Articles[0].Title != "Managing Stress" {
		t.Errorf("articles = %+v", resp.Articles)
	}
}

// TestContentHandler_Articles_Empty は記事なしで空配列が返ることを検証する。
func TestContentHandler_Articles_Empty(t *testing.T) {
	h := NewContentHandler(&fakeArticleService{})

	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	w := httptest.NewRecorder()

	h.Articles(w, req)

	if !strings.Contains(w.Body.String(), `"articles":[]`) {
		t.Errorf("expected empty array, got %s", w.Body.String())
	}
}
