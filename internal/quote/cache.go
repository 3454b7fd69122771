// Package quote は日替わり名言の日次キャッシュを提供する。
// 同じ日の2回目以降の取得は生成を呼ばず、保存済みの名言を返す。
package quote

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hitoshi/manas/internal/model"
	"github.com/hitoshi/manas/internal/store"
)

// Generator は名言生成のインターフェース。
// assistant.Serviceの部分集合として定義する。失敗時もフォールバック済みの
// 名言を返すため、エラーは返さない。
type Generator interface {
	Quote(ctx context.Context) (text, author string)
}

// MetricsRecorder は名言キャッシュのメトリクス記録インターフェース。
type MetricsRecorder interface {
	RecordQuoteCacheHit()
	RecordQuoteRefresh()
}

// Cache は名言の日次キャッシュ。
// 日付はサーバーローカルタイムの暦日で判定する。
type Cache struct {
	mu        sync.Mutex
	store     store.Store
	generator Generator
	metrics   MetricsRecorder
	now       func() time.Time
}

// NewCache はCacheの新しいインスタンスを生成する。
func NewCache(st store.Store, gen Generator, metrics MetricsRecorder) *Cache {
	return &Cache{
		store:     st,
		generator: gen,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Today は今日の名言を返す。
// 保存済みの名言の日付が今日と一致すればそれを返し、生成は呼ばない。
// 一致しない（または欠損・破損の）場合はちょうど1回生成し、結果を保存する。
// フォールバック文言も通常の名言と同様にキャッシュされる。
func (c *Cache) Today(ctx context.Context) (model.DailyQuote, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	today := c.now().Format(model.QuoteDateLayout)

	var cached model.DailyQuote
	err := store.GetDecoded(ctx, c.store, store.KeyDailyQuote, &cached)
	if err == nil && cached.Date == today {
		c.metrics.RecordQuoteCacheHit()
		return cached, nil
	}
	if err != nil && store.IsCorrupted(err) {
		slog.Warn("cached quote is corrupted, refreshing",
			slog.String("error", err.Error()),
		)
	}

	text, author := c.generator.Quote(ctx)
	fresh := model.DailyQuote{
		Text:   text,
		Author: author,
		Date:   today,
	}

	if err := store.SetEncoded(ctx, c.store, store.KeyDailyQuote, fresh); err != nil {
		return model.DailyQuote{}, fmt.Errorf("名言の保存に失敗しました: %w", err)
	}

	c.metrics.RecordQuoteRefresh()
	slog.Info("daily quote refreshed",
		slog.String("date", today),
	)
	return fresh, nil
}
