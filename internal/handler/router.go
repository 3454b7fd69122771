package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/manas/internal/middleware"
	"github.com/hitoshi/manas/internal/store"
)

// StorePinger はヘルスチェック用のストア疎通確認インターフェース。
type StorePinger interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	StatusRecorder    middleware.HTTPStatusRecorder

	// 認証・セッション
	SessionService SessionServiceInterface
	TokenIssuer    TokenIssuerInterface

	// 気分ログ
	MoodService MoodServiceInterface

	// チャット
	ChatService ChatServiceInterface

	// 名言・インサイト
	QuoteService   QuoteServiceInterface
	InsightService InsightServiceInterface

	// 画面遷移
	ViewRouter ViewRouterInterface

	// コンテンツ
	ArticleService ArticleServiceInterface

	// 気分記録後の画面遷移とメトリクス
	HomeNavigator HomeNavigator
	MoodMetrics   MoodMetricsRecorder

	// ヘルスチェック
	Store StorePinger

	// Prometheusスクレイプ用ハンドラー
	MetricsHandler http.Handler
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORSMiddleware → LoggingMiddleware → RecoveryMiddleware → MetricsMiddleware → RateLimitMiddleware(General)
//
// チャット送信（POST /api/chat）には追加でチャット専用レート制限を適用する。
// /healthと/metricsはレート制限の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewMetricsMiddleware(deps.StatusRecorder))

	authHandler := NewAuthHandler(deps.SessionService, deps.TokenIssuer)
	moodHandler := NewMoodHandler(deps.MoodService, deps.HomeNavigator, deps.MoodMetrics)
	chatHandler := NewChatHandler(deps.ChatService)
	dashboardHandler := NewDashboardHandler(deps.QuoteService, deps.InsightService, deps.MoodService)
	viewHandler := NewViewHandler(deps.ViewRouter)
	contentHandler := NewContentHandler(deps.ArticleService)

	// 運用系エンドポイント（レート制限の外）
	r.Get("/health", healthHandler(deps.Store))
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// APIルート
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// 認証・セッション
		r.Post("/api/register", authHandler.Register)
		r.Post("/api/login", authHandler.Login)
		r.Post("/api/logout", authHandler.Logout)
		r.Route("/api/me", func(r chi.Router) {
			r.Get("/", authHandler.Me)
			r.Put("/", authHandler.UpdateMe)
		})

		// 気分ログ
		r.Route("/api/moods", func(r chi.Router) {
			r.Get("/", moodHandler.List)
			r.Post("/", moodHandler.Create)
			r.Get("/recent", moodHandler.Recent)
			r.Get("/summary", moodHandler.Summary)
		})

		// チャット（送信には専用レート制限を追加）
		r.Route("/api/chat", func(r chi.Router) {
			r.Get("/", chatHandler.History)
			r.With(deps.RateLimiter.ChatMiddleware()).Post("/", chatHandler.Send)
		})

		// 名言・インサイト
		r.Get("/api/quote", dashboardHandler.Quote)
		r.Get("/api/insight", dashboardHandler.Insight)

		// 画面遷移
		r.Route("/api/view", func(r chi.Router) {
			r.Get("/", viewHandler.Current)
			r.Post("/{tab}", viewHandler.Navigate)
		})

		// コンテンツ
		r.Get("/api/resources", contentHandler.Resources)
		r.Get("/api/articles", contentHandler.Articles)
	})

	return r
}

// healthHandler はストアへの疎通を確認するヘルスチェックハンドラーを返す。
// キー欠損は正常として扱う（疎通自体は成功しているため）。
func healthHandler(st StorePinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if _, err := st.Get(ctx, "health_check"); err != nil && !store.IsNotFound(err) {
			slog.Error("health check failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
