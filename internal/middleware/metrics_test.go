package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeStatusRecorder はHTTPStatusRecorderのテスト用フェイク。
type fakeStatusRecorder struct {
	recorded []int
}

func (f *fakeStatusRecorder) RecordHTTPStatus(statusCode int) {
	f.recorded = append(f.recorded, statusCode)
}

// TestMetricsMiddleware_RecordsStatusCode はレスポンスのステータスコードが記録されることを検証する。
func TestMetricsMiddleware_RecordsStatusCode(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
	}{
		{"200 OK", http.StatusOK},
		{"201 Created", http.StatusCreated},
		{"409 Conflict", http.StatusConflict},
		{"500 Internal Server Error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeStatusRecorder{}

			handler := NewMetricsMiddleware(rec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/moods", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if len(rec.recorded) != 1 {
				t.Fatalf("recorded count = %d, want 1", len(rec.recorded))
			}
			if rec.recorded[0] != tt.statusCode {
				t.Errorf("recorded status = %d, want %d", rec.recorded[0], tt.statusCode)
			}
		})
	}
}

// TestMetricsMiddleware_ImplicitOK はWriteHeaderを呼ばない場合に200が記録されることを検証する。
func TestMetricsMiddleware_ImplicitOK(t *testing.T) {
	rec := &fakeStatusRecorder{}

	handler := NewMetricsMiddleware(rec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/moods", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if len(rec.recorded) != 1 || rec.recorded[0] != http.StatusOK {
		t.Errorf("recorded = %v, want [200]", rec.recorded)
	}
}
