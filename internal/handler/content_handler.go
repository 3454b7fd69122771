package handler

import (
	"net/http"

	"github.com/hitoshi/manas/internal/content"
)

// ArticleServiceInterface は記事一覧の取得インターフェース。
type ArticleServiceInterface interface {
	Articles() []content.Article
}

// ContentHandler は相談先リソースと記事のHTTPハンドラー。
type ContentHandler struct {
	articles ArticleServiceInterface
}

// NewContentHandler はContentHandlerを生成する。
func NewContentHandler(articles ArticleServiceInterface) *ContentHandler {
	return &ContentHandler{articles: articles}
}

// Resources は相談先リソースの固定カタログを返す。
// GET /api/resources
func (h *ContentHandler) Resources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"resources": content.Resources()})
}

// Articles は記事一覧を返す。フィード取得済みであればその記事、なければ組み込み記事。
// GET /api/articles
func (h *ContentHandler) Articles(w http.ResponseWriter, r *http.Request) {
	articles := h.articles.Articles()
	if articles == nil {
		articles = []content.Article{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"articles": articles})
}
