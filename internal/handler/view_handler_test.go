package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/manas/internal/model"
	"github.com/hitoshi/manas/internal/view"
)

// fakeViewRouter はViewRouterInterfaceのテスト用フェイク。
type fakeViewRouter struct {
	current   view.Tab
	buildFunc func(ctx context.Context) (any, error)
}

func (f *fakeViewRouter) Current() view.Tab {
	return f.current
}

func (f *fakeViewRouter) Navigate(name string) (view.Tab, error) {
	tab, ok := view.ParseTab(name)
	if !ok {
		return f.current, model.NewUnknownViewError(name)
	}
	f.current = tab
	return tab, nil
}

func (f *fakeViewRouter) Build(ctx context.Context) (any, error) {
	return f.buildFunc(ctx)
}

// テスト用にchiルーティングへマウントする。URLパラメータの解決に必要。
func mountViewRoutes(h *ViewHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/view", h.Current)
	r.Post("/api/view/{tab}", h.Navigate)
	return r
}

// TestViewHandler_Current は現在の画面とペイロードが返ることを検証する。
func TestViewHandler_Current(t *testing.T) {
	router := &fakeViewRouter{
		current: view.TabHome,
		buildFunc: func(ctx context.Context) (any, error) {
			return view.HomeView{Greeting: "Welcome, Aoi"}, nil
		},
	}
	handler := mountViewRoutes(NewViewHandler(router))

	req := httptest.NewRequest(http.MethodGet, "/api/view", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		View    string          `json:"view"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.View != "home" {
		t.Errorf("view = %q, want %q", resp.View, "home")
	}

	var payload view.HomeView
	if err := json.Unmarshal(resp.Payload, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if payload.Greeting != "Welcome, Aoi" {
		t.Errorf("greeting = %q, want %q", payload.Greeting, "Welcome, Aoi")
	}
}

// TestViewHandler_Navigate_Success は遷移成功時に遷移後の画面が返ることを検証する。
func TestViewHandler_Navigate_Success(t *testing.T) {
	router := &fakeViewRouter{
		current: view.TabHome,
		buildFunc: func(ctx context.Context) (any, error) {
			return view.MeditateView{}, nil
		},
	}
	handler := mountViewRoutes(NewViewHandler(router))

	req := httptest.NewRequest(http.MethodPost, "/api/view/meditate", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		View string `json:"view"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.View != "meditate" {
		t.Errorf("view = %q, want %q", resp.View, "meditate")
	}
}

// TestViewHandler_Navigate_UnknownView は未知の画面名で400とUNKNOWN_VIEWが返ることを検証する。
func TestViewHandler_Navigate_UnknownView(t *testing.T) {
	router := &fakeViewRouter{
		current: view.TabHome,
		buildFunc: func(ctx context.Context) (any, error) {
			return view.HomeView{}, nil
		},
	}
	handler := mountViewRoutes(NewViewHandler(router))

	req := httptest.NewRequest(http.MethodPost, "/api/view/settings", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp apiErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != model.ErrCodeUnknownView {
		t.Errorf("code = %q, want %q", resp.Code, model.ErrCodeUnknownView)
	}

	// 遷移失敗後も現在の画面は変わらない
	if router.current != view.TabHome {
		t.Errorf("current = %q, want %q", router.current, view.TabHome)
	}
}
