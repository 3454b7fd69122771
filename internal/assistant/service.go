package assistant

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hitoshi/manas/internal/model"
)

// Greeting は会話の先頭に必ず置かれるアシスタントの挨拶。
const Greeting = "Hello! I'm your AI Buddy. I'm here to listen, offer support, and help you find calm. How's everything going?"

// 生成失敗時・空応答時の固定文言。
// エラーは会話としてユーザーへ返し、障害として表面化させない。
const (
	// ChatErrorFallback は生成失敗時のチャット応答。
	ChatErrorFallback = "I apologize, I've encountered a small technical glitch. I'm still here to listen."
	// ChatEmptyFallback は空応答時のチャット応答。
	ChatEmptyFallback = "I'm here for you. Could you tell me more?"

	// QuoteErrorText とQuoteErrorAuthor は生成失敗時の名言。
	QuoteErrorText   = "Nature does not hurry, yet everything is accomplished."
	QuoteErrorAuthor = "Lao Tzu"
	// QuoteEmptyText とQuoteEmptyAuthor は応答フィールド欠損時の名言。
	QuoteEmptyText   = "Peace is a journey of a thousand miles and it must be taken one step at a time."
	QuoteEmptyAuthor = "Ancient Wisdom"

	// InsightNoEntries はログが0件のときのインサイト。生成は呼ばない。
	InsightNoEntries = "Start logging your mood to receive personalized AI insights."
	// InsightErrorFallback は生成失敗時のインサイト。
	InsightErrorFallback = "Reflecting on your journey is a powerful step. You're making progress!"
	// InsightEmptyFallback は空応答時のインサイト。
	InsightEmptyFallback = "You're doing a great job checking in with yourself. Keep it up!"
)

// InputSanitizer はチャット入力のサニタイズを行うインターフェース。
type InputSanitizer interface {
	Sanitize(s string) string
}

// MetricsRecorder はアシスタント関連メトリクスの記録インターフェース。
type MetricsRecorder interface {
	RecordAssistantRequest(kind string)
	RecordAssistantFallback(kind string)
	RecordAssistantLatency(kind string, duration time.Duration)
}

// Service はアシスタント機能のサービス層。
// チャット会話はメモリ上にのみ保持し、未完了のチャットリクエストは
// 同時に1件まで許可する（後続はキューイングせず拒否する）。
type Service struct {
	mu        sync.Mutex
	generator Generator
	sanitizer InputSanitizer
	metrics   MetricsRecorder
	timeout   time.Duration
	history   []model.ChatMessage
	pending   bool
}

// NewService はServiceの新しいインスタンスを生成する。
// 会話は挨拶メッセージ1件から始まる。
func NewService(gen Generator, sanitizer InputSanitizer, metrics MetricsRecorder, timeout time.Duration) *Service {
	return &Service{
		generator: gen,
		sanitizer: sanitizer,
		metrics:   metrics,
		timeout:   timeout,
		history:   initialHistory(),
	}
}

func initialHistory() []model.ChatMessage {
	return []model.ChatMessage{
		{Role: model.ChatRoleModel, Text: Greeting},
	}
}

// History は現在の会話履歴のコピーを返す。
func (s *Service) History() []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

// Send はユーザーメッセージを会話へ追加し、アシスタント応答を生成して返す。
// 前のリクエストが未完了の場合はCHAT_BUSYで拒否する。
// 生成失敗と空応答はそれぞれ固定文言の応答として返し、エラーにはしない。
func (s *Service) Send(ctx context.Context, text string) (model.ChatMessage, error) {
	text = s.sanitizer.Sanitize(text)

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return model.ChatMessage{}, model.NewChatBusyError()
	}
	s.pending = true
	// 生成中の履歴スナップショット。生成はロック外で行う。
	history := make([]model.ChatMessage, len(s.history))
	copy(history, s.history)
	s.mu.Unlock()

	s.metrics.RecordAssistantRequest("chat")
	start := time.Now()

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	replyText, err := s.generator.Chat(genCtx, history, text)
	s.metrics.RecordAssistantLatency("chat", time.Since(start))

	if err != nil {
		slog.Warn("chat generation failed, using fallback",
			slog.String("error", err.Error()),
		)
		s.metrics.RecordAssistantFallback("chat")
		replyText = ChatErrorFallback
	} else if replyText == "" {
		s.metrics.RecordAssistantFallback("chat")
		replyText = ChatEmptyFallback
	}

	reply := model.ChatMessage{Role: model.ChatRoleModel, Text: replyText}

	s.mu.Lock()
	s.history = append(s.history,
		model.ChatMessage{Role: model.ChatRoleUser, Text: text},
		reply,
	)
	s.pending = false
	s.mu.Unlock()

	return reply, nil
}

// Pending は未完了のチャットリクエストがあるかを返す。
func (s *Service) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Reset は会話を挨拶のみの初期状態へ戻す。
// チャット画面から離れたときに呼ばれる。
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = initialHistory()
	s.pending = false
}

// Quote は名言を生成して返す。エラーにはせず、必ず名言を返す。
// 生成失敗時は固定の名言、フィールド欠損時はフィールドごとの既定値を使う。
func (s *Service) Quote(ctx context.Context) (text, author string) {
	s.metrics.RecordAssistantRequest("quote")
	start := time.Now()

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, author, err := s.generator.Quote(genCtx)
	s.metrics.RecordAssistantLatency("quote", time.Since(start))

	if err != nil {
		slog.Warn("quote generation failed, using fallback",
			slog.String("error", err.Error()),
		)
		s.metrics.RecordAssistantFallback("quote")
		return QuoteErrorText, QuoteErrorAuthor
	}

	if text == "" {
		text = QuoteEmptyText
	}
	if author == "" {
		author = QuoteEmptyAuthor
	}
	return text, author
}

// Insight は気分ログからインサイト文を生成して返す。エラーにはせず、必ず文を返す。
// ログが0件のときは生成を呼ばずに案内文を返す。
func (s *Service) Insight(ctx context.Context, entries []model.MoodEntry) string {
	if len(entries) == 0 {
		return InsightNoEntries
	}

	s.metrics.RecordAssistantRequest("insight")
	start := time.Now()

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.generator.Insight(genCtx, entries)
	s.metrics.RecordAssistantLatency("insight", time.Since(start))

	if err != nil {
		slog.Warn("insight generation failed, using fallback",
			slog.String("error", err.Error()),
		)
		s.metrics.RecordAssistantFallback("insight")
		return InsightErrorFallback
	}
	if text == "" {
		s.metrics.RecordAssistantFallback("insight")
		return InsightEmptyFallback
	}
	return text
}
