package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

// テスト用の小さなレート制限設定を返す。
func testRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(1.0), // 1 req/sec
		GeneralBurst:    3,
		ChatRate:        rate.Limit(1.0),
		ChatBurst:       2,
		CleanupInterval: time.Hour, // テスト中はクリーンアップを起こさない
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// TestGeneralMiddleware_AllowsWithinBurst はバースト以内のリクエストが許可されることを検証する。
func TestGeneralMiddleware_AllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/moods", nil)
		req.RemoteAddr = "203.0.113.1:12345"
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, w.Code, http.StatusOK)
		}
	}
}

// TestGeneralMiddleware_RejectsOverBurst はバーストを超えたリクエストが429で拒否されることを検証する。
func TestGeneralMiddleware_RejectsOverBurst(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/moods", nil)
		req.RemoteAddr = "203.0.113.1:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/moods", nil)
	req.RemoteAddr = "203.0.113.1:12345"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}

	if retryAfter := w.Header().Get("Retry-After"); retryAfter == "" {
		t.Error("expected Retry-After header")
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if body["code"] != "rate_limit_exceeded" {
		t.Errorf("code = %q, want %q", body["code"], "rate_limit_exceeded")
	}
}

// TestGeneralMiddleware_SeparateClients はクライアントIPごとに独立したリミッターが使われることを検証する。
func TestGeneralMiddleware_SeparateClients(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())

	// 1つ目のクライアントでバーストを使い切る
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/moods", nil)
		req.RemoteAddr = "203.0.113.1:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
	}

	// 別のクライアントは影響を受けない
	req := httptest.NewRequest(http.MethodGet, "/api/moods", nil)
	req.RemoteAddr = "203.0.113.2:12345"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d for separate client", w.Code, http.StatusOK)
	}

	if count := rl.GeneralLimiterCount(); count != 2 {
		t.Errorf("GeneralLimiterCount = %d, want 2", count)
	}
}

// TestChatMiddleware_IndependentFromGeneral はチャットのレート制限がAPI全般と独立であることを検証する。
func TestChatMiddleware_IndependentFromGeneral(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	generalHandler := rl.GeneralMiddleware()(okHandler())
	chatHandler := rl.ChatMiddleware()(okHandler())

	// チャットのバースト(2)を使い切る
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
		req.RemoteAddr = "203.0.113.1:12345"
		w := httptest.NewRecorder()
		chatHandler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("chat request %d: status = %d, want %d", i+1, w.Code, http.StatusOK)
		}
	}

	// 3回目のチャット送信は拒否される
	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	req.RemoteAddr = "203.0.113.1:12345"
	w := httptest.NewRecorder()
	chatHandler.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("chat status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}

	// 同じクライアントでもAPI全般のリクエストは許可される
	req = httptest.NewRequest(http.MethodGet, "/api/moods", nil)
	req.RemoteAddr = "203.0.113.1:12345"
	w = httptest.NewRecorder()
	generalHandler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("general status = %d, want %d after chat limit", w.Code, http.StatusOK)
	}
}

// TestClientIP_XForwardedFor はX-Forwarded-Forの先頭アドレスが使われることを検証する。
func TestClientIP_XForwardedFor(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{"single address", "198.51.100.7", "10.0.0.1:8080", "198.51.100.7"},
		{"multiple addresses", "198.51.100.7, 10.0.0.2, 10.0.0.3", "10.0.0.1:8080", "198.51.100.7"},
		{"with spaces", "  198.51.100.7  ,10.0.0.2", "10.0.0.1:8080", "198.51.100.7"},
		{"no header", "", "203.0.113.9:45678", "203.0.113.9"},
		{"no port in remote addr", "", "203.0.113.9", "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/moods", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestRateLimiter_Cleanup は期限切れエントリがクリーンアップされることを検証する。
func TestRateLimiter_Cleanup(t *testing.T) {
	config := testRateLimiterConfig()
	config.CleanupInterval = 10 * time.Millisecond

	rl := NewRateLimiter(config)
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/moods", nil)
	req.RemoteAddr = "203.0.113.1:12345"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if count := rl.GeneralLimiterCount(); count != 1 {
		t.Fatalf("GeneralLimiterCount = %d, want 1", count)
	}

	// TTL（CleanupIntervalの2倍）を超えて待機し、クリーンアップを待つ
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if rl.GeneralLimiterCount() == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Errorf("expired entry was not cleaned up: count = %d", rl.GeneralLimiterCount())
}

// TestRateLimiter_TokenReplenishment は時間経過でトークンが補充されることを検証する。
func TestRateLimiter_TokenReplenishment(t *testing.T) {
	config := testRateLimiterConfig()
	config.GeneralRate = rate.Limit(100.0) // 高速に補充
	config.GeneralBurst = 1

	rl := NewRateLimiter(config)
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/moods", nil)
	req.RemoteAddr = "203.0.113.1:12345"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("first request: status = %d, want %d", w.Code, http.StatusOK)
	}

	// 補充を待ってから再送すると許可される
	time.Sleep(50 * time.Millisecond)

	req = httptest.NewRequest(http.MethodGet, "/api/moods", nil)
	req.RemoteAddr = "203.0.113.1:12345"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("after replenishment: status = %d, want %d", w.Code, http.StatusOK)
	}
}

// TestDefaultRateLimiterConfig はデフォルト設定の値を検証する。
func TestDefaultRateLimiterConfig(t *testing.T) {
	config := DefaultRateLimiterConfig()

	if config.GeneralBurst != 120 {
		t.Errorf("GeneralBurst = %d, want 120", config.GeneralBurst)
	}
	if config.ChatBurst != 10 {
		t.Errorf("ChatBurst = %d, want 10", config.ChatBurst)
	}
	if config.CleanupInterval != 5*time.Minute {
		t.Errorf("CleanupInterval = %v, want 5m", config.CleanupInterval)
	}
}
