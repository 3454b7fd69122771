// Package app はアプリケーションの初期化と起動を提供する。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/hitoshi/manas/internal/assistant"
	"github.com/hitoshi/manas/internal/auth"
	"github.com/hitoshi/manas/internal/config"
	"github.com/hitoshi/manas/internal/content"
	"github.com/hitoshi/manas/internal/database"
	"github.com/hitoshi/manas/internal/handler"
	"github.com/hitoshi/manas/internal/logger"
	"github.com/hitoshi/manas/internal/metrics"
	"github.com/hitoshi/manas/internal/middleware"
	"github.com/hitoshi/manas/internal/mood"
	"github.com/hitoshi/manas/internal/quote"
	"github.com/hitoshi/manas/internal/security"
	"github.com/hitoshi/manas/internal/session"
	"github.com/hitoshi/manas/internal/store"
	"github.com/hitoshi/manas/internal/theme"
	"github.com/hitoshi/manas/internal/view"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はAPIサーバーモードで起動する。
// DB接続を開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	st := store.NewPostgresStore(db)

	// 2. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 3. テーマとセッションの初期化
	renderRoot := theme.NewRenderRoot()
	themeController := theme.NewController(renderRoot)
	sessionManager := session.NewManager(st, themeController)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 起動時に保存済みテーマを適用
	sessionManager.ApplyStoredTheme(ctx)

	// 4. サニタイザーの初期化
	textSanitizer := security.NewTextSanitizer()
	articleSanitizer := security.NewArticleSanitizer()
	ssrfGuard := security.NewSSRFGuard()

	// 5. 気分ログの初期化
	moodManager := mood.NewManager(st, textSanitizer)
	if err := moodManager.SeedIfEmpty(ctx); err != nil {
		return fmt.Errorf("failed to seed mood log: %w", err)
	}

	// 6. アシスタントの初期化
	geminiClient, err := assistant.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return fmt.Errorf("failed to create gemini client: %w", err)
	}
	assistantService := assistant.NewService(geminiClient, textSanitizer, collector, cfg.AssistantTimeout)

	// 7. 名言キャッシュの初期化
	quoteCache := quote.NewCache(st, assistantService, collector)

	// 8. 記事フィードの初期化
	contentService := content.NewService(cfg.ArticlesFeedURL, ssrfGuard, articleSanitizer, cfg.ArticlesFetchTimeout)
	if cfg.ArticlesFeedURL != "" {
		go contentService.RunRefreshLoop(ctx, cfg.ArticlesRefreshInterval)
	}

	// 9. 画面ルーターの初期化
	viewRouter := view.NewRouter(
		sessionManager,
		moodManager,
		quoteCache,
		assistantService,
		assistantService,
		contentService,
	)

	// 10. トークン発行とレート制限の初期化
	tokenIssuer := auth.NewTokenIssuer(cfg.SessionSecret, cfg.TokenTTL)

	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	rateLimiterCfg.GeneralRate = rate.Limit(float64(cfg.RateLimitGeneral) / 60.0)
	rateLimiterCfg.GeneralBurst = cfg.RateLimitGeneral
	rateLimiterCfg.ChatRate = rate.Limit(float64(cfg.RateLimitChat) / 60.0)
	rateLimiterCfg.ChatBurst = cfg.RateLimitChat
	rateLimiter := middleware.NewRateLimiter(rateLimiterCfg)
	defer rateLimiter.Stop()

	// 11. ルーターの構築
	deps := &handler.RouterDeps{
		Logger:            slog.Default(),
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		StatusRecorder:    collector,

		SessionService: sessionManager,
		TokenIssuer:    tokenIssuer,

		MoodService: moodManager,
		ChatService: assistantService,

		QuoteService:   quoteCache,
		InsightService: assistantService,

		ViewRouter:     viewRouter,
		ArticleService: contentService,

		HomeNavigator: viewRouter,
		MoodMetrics:   collector,

		Store:          st,
		MetricsHandler: metrics.Handler(registry),
	}

	router := handler.NewRouter(deps)

	// 12. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
