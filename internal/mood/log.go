// Package mood は気分記録の追記専用ログを提供する。
// エントリは作成後に変更も削除もされず、常に末尾へ追加される。
package mood

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/hitoshi/manas/internal/model"
	"github.com/hitoshi/manas/internal/store"
)

// NoteSanitizer は自由記述メモのサニタイズを行うインターフェース。
type NoteSanitizer interface {
	Sanitize(s string) string
}

// Manager は気分ログのサービス層。
// すべての変更は即時ストアへ永続化される（ライトスルー）。
type Manager struct {
	mu        sync.Mutex
	store     store.Store
	sanitizer NoteSanitizer
	now       func() time.Time
}

// NewManager はManagerの新しいインスタンスを生成する。
func NewManager(st store.Store, sanitizer NoteSanitizer) *Manager {
	return &Manager{
		store:     st,
		sanitizer: sanitizer,
		now:       time.Now,
	}
}

// SeedIfEmpty はキーが存在しない場合のみ初期デモデータを投入する。
// キーが存在すれば空配列でも何もしない。
func (m *Manager) SeedIfEmpty(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := m.store.Get(ctx, store.KeyMoodEntries)
	if err == nil || store.IsCorrupted(err) {
		// 破損したキーは欠損扱いだが、再シードはせず空ログから再開する
		return nil
	}
	if !store.IsNotFound(err) {
		return fmt.Errorf("気分ログの確認に失敗しました: %w", err)
	}

	now := m.now()
	seed := []model.MoodEntry{
		{ID: "1", Timestamp: now.AddDate(0, 0, -4).UnixMilli(), Mood: model.MoodNeutral, StressLevel: 3, Note: "Feeling a bit tired today."},
		{ID: "2", Timestamp: now.AddDate(0, 0, -3).UnixMilli(), Mood: model.MoodGood, StressLevel: 2, Note: "Productive day at work."},
		{ID: "3", Timestamp: now.AddDate(0, 0, -2).UnixMilli(), Mood: model.MoodExcellent, StressLevel: 1, Note: "Spent time with friends!"},
		{ID: "4", Timestamp: now.AddDate(0, 0, -1).UnixMilli(), Mood: model.MoodFair, StressLevel: 4, Note: "A bit stressed out."},
	}

	if err := store.SetEncoded(ctx, m.store, store.KeyMoodEntries, seed); err != nil {
		return fmt.Errorf("初期データの保存に失敗しました: %w", err)
	}

	slog.Info("mood log seeded with demo entries",
		slog.Int("count", len(seed)),
	)
	return nil
}

// Add は新しい気分エントリをログ末尾へ追加する。
// 気分値とストレスレベルを検証し、メモはサニタイズして保存する。
// IDはepochミリ秒の文字列表現。
func (m *Manager) Add(ctx context.Context, moodValue string, stressLevel int, note string) (*model.MoodEntry, error) {
	mt, ok := model.ParseMood(moodValue)
	if !ok {
		return nil, model.NewInvalidMoodError(moodValue)
	}
	if stressLevel < model.StressLevelMin || stressLevel > model.StressLevelMax {
		return nil, model.NewInvalidStressLevelError(stressLevel)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.loadEntries(ctx)

	now := m.now()
	entry := model.MoodEntry{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		Timestamp:   now.UnixMilli(),
		Mood:        mt,
		StressLevel: stressLevel,
		Note:        m.sanitizer.Sanitize(note),
	}

	entries = append(entries, entry)
	if err := store.SetEncoded(ctx, m.store, store.KeyMoodEntries, entries); err != nil {
		return nil, fmt.Errorf("気分ログの保存に失敗しました: %w", err)
	}

	slog.Info("mood entry added",
		slog.String("entry_id", entry.ID),
		slog.String("mood", string(entry.Mood)),
		slog.Int("stress_level", entry.StressLevel),
	)

	return &entry, nil
}

// Entries は全エントリを保存順（古い順）で返す。
func (m *Manager) Entries(ctx context.Context) []model.MoodEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.loadEntries(ctx)
}

// EntriesNewestFirst は全エントリを新しい順で返す。履歴表示用。
func (m *Manager) EntriesNewestFirst(ctx context.Context) []model.MoodEntry {
	entries := m.Entries(ctx)

	reversed := make([]model.MoodEntry, len(entries))
	for i, e := range entries {
		reversed[len(entries)-1-i] = e
	}
	return reversed
}

// Recent は末尾からn件を保存順（古い順）で返す。トレンドチャート用。
// n件に満たない場合は全件を返す。
func (m *Manager) Recent(ctx context.Context, n int) []model.MoodEntry {
	entries := m.Entries(ctx)
	if n <= 0 || len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}

// AverageStress は全エントリのストレスレベル平均を小数第1位へ丸めて返す。
// エントリが0件の場合は0を返す。
func (m *Manager) AverageStress(ctx context.Context) float64 {
	entries := m.Entries(ctx)
	if len(entries) == 0 {
		return 0
	}

	var sum int
	for _, e := range entries {
		sum += e.StressLevel
	}
	avg := float64(sum) / float64(len(entries))
	return math.Round(avg*10) / 10
}

// loadEntries はログをロードする。
// キー欠損と値破損はどちらも空ログとして扱う（破損は警告ログのみ）。
func (m *Manager) loadEntries(ctx context.Context) []model.MoodEntry {
	var entries []model.MoodEntry
	err := store.GetDecoded(ctx, m.store, store.KeyMoodEntries, &entries)
	if err != nil {
		if store.IsCorrupted(err) {
			slog.Warn("mood log is corrupted, falling back to empty",
				slog.String("error", err.Error()),
			)
		}
		return nil
	}
	return entries
}
