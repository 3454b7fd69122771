package content

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
)

// maxFeedArticles は外部フィードから取り込む記事の最大数。
const maxFeedArticles = 6

// maxFeedBodySize はフィードレスポンスの最大読み取りサイズ。
const maxFeedBodySize = 5 * 1024 * 1024

// SSRFValidator はSSRF検証のインターフェース。
// security.SSRFGuardServiceを抽象化してテスタビリティを向上させる。
type SSRFValidator interface {
	ValidateURL(rawURL string) error
	NewSafeClient(timeout time.Duration) *http.Client
}

// ArticleSanitizer は記事HTMLのサニタイズを行うインターフェース。
type ArticleSanitizer interface {
	Sanitize(rawHTML string) string
}

// Service は記事カタログのサービス層。
// 外部フィードが設定されていれば更新時にそこから記事を取り込み、
// 未設定または更新失敗時は組み込みカタログを返す。
type Service struct {
	mu        sync.RWMutex
	feedURL   string
	ssrfGuard SSRFValidator
	sanitizer ArticleSanitizer
	timeout   time.Duration
	fetched   []Article
}

// NewService はServiceの新しいインスタンスを生成する。
// feedURLが空の場合、Articlesは常に組み込みカタログを返す。
func NewService(feedURL string, ssrfGuard SSRFValidator, sanitizer ArticleSanitizer, timeout time.Duration) *Service {
	return &Service{
		feedURL:   feedURL,
		ssrfGuard: ssrfGuard,
		sanitizer: sanitizer,
		timeout:   timeout,
	}
}

// Articles は現在の記事カタログを返す。
// フィードからの取り込みに一度も成功していなければ組み込みカタログを返す。
func (s *Service) Articles() []Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.fetched) == 0 {
		return BuiltinArticles()
	}
	out := make([]Article, len(s.fetched))
	copy(out, s.fetched)
	return out
}

// Refresh は外部フィードから記事を取り込み直す。
// 失敗しても直前の取り込み結果（なければ組み込みカタログ）は維持される。
func (s *Service) Refresh(ctx context.Context) error {
	if s.feedURL == "" {
		return nil
	}

	if err := s.ssrfGuard.ValidateURL(s.feedURL); err != nil {
		return fmt.Errorf("フィードURLの検証に失敗しました: %w", err)
	}

	client := s.ssrfGuard.NewSafeClient(s.timeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return fmt.Errorf("リクエスト作成に失敗しました: %w", err)
	}
	req.Header.Set("User-Agent", "Manas/1.0")
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, */*")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("フィードの取得に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("フィードの取得に失敗しました: HTTPステータス %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBodySize))
	if err != nil {
		return fmt.Errorf("レスポンスの読み取りに失敗しました: %w", err)
	}

	parsed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return fmt.Errorf("フィードのパースに失敗しました: %w", err)
	}

	articles := make([]Article, 0, maxFeedArticles)
	for i, item := range parsed.Items {
		if i >= maxFeedArticles {
			break
		}

		id := item.GUID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		summary := item.Description
		if summary == "" {
			summary = item.Content
		}

		article := Article{
			ID:       id,
			Title:    s.sanitizer.Sanitize(item.Title),
			Summary:  s.sanitizer.Sanitize(summary),
			Category: "Wellness",
			Link:     item.Link,
		}
		if len(item.Categories) > 0 {
			article.Category = item.Categories[0]
		}
		if item.Image != nil {
			article.Image = item.Image.URL
		}
		articles = append(articles, article)
	}

	if len(articles) == 0 {
		return fmt.Errorf("フィードに記事がありません")
	}

	s.mu.Lock()
	s.fetched = articles
	s.mu.Unlock()

	slog.Info("articles refreshed from feed",
		slog.String("feed_url", s.feedURL),
		slog.Int("count", len(articles)),
	)
	return nil
}

// RunRefreshLoop は一定間隔でRefreshを呼び続ける。
// コンテキストのキャンセルで停止する。起動時に1回即時更新する。
func (s *Service) RunRefreshLoop(ctx context.Context, interval time.Duration) {
	if s.feedURL == "" {
		return
	}

	if err := s.Refresh(ctx); err != nil {
		slog.Warn("initial article refresh failed, keeping builtin catalog",
			slog.String("error", err.Error()),
		)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				slog.Warn("article refresh failed, keeping previous catalog",
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
