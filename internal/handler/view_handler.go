package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/manas/internal/view"
)

// ViewRouterInterface は画面遷移ハンドラーが必要とするルーターインターフェース。
type ViewRouterInterface interface {
	Current() view.Tab
	Navigate(name string) (view.Tab, error)
	Build(ctx context.Context) (any, error)
}

// ViewHandler は画面遷移と画面ペイロードのHTTPハンドラー。
type ViewHandler struct {
	router ViewRouterInterface
}

// NewViewHandler はViewHandlerを生成する。
func NewViewHandler(router ViewRouterInterface) *ViewHandler {
	return &ViewHandler{router: router}
}

// Current は現在の画面とそのペイロードを返す。
// GET /api/view
func (h *ViewHandler) Current(w http.ResponseWriter, r *http.Request) {
	payload, err := h.router.Build(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"view":    string(h.router.Current()),
		"payload": payload,
	})
}

// Navigate は指定された画面へ遷移し、遷移後のペイロードを返す。
// 未知の画面名はUNKNOWN_VIEWで拒否される。
// POST /api/view/{tab}
func (h *ViewHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "tab")

	tab, err := h.router.Navigate(name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	payload, err := h.router.Build(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"view":    string(tab),
		"payload": payload,
	})
}
