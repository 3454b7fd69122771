// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, store, external, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeNotLoggedIn        = "NOT_LOGGED_IN"
	ErrCodeInvalidMood        = "INVALID_MOOD"
	ErrCodeInvalidStressLevel = "INVALID_STRESS_LEVEL"
	ErrCodeInvalidTheme       = "INVALID_THEME"
	ErrCodeUnknownView        = "UNKNOWN_VIEW"
	ErrCodeChatBusy           = "CHAT_BUSY"
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
)

// NewEmailTakenError は登録済みメールアドレスの再登録エラーを生成する。
func NewEmailTakenError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailTaken,
		Message:  "このメールアドレスは既に登録されています。",
		Category: "validation",
		Action:   "別のメールアドレスを使用するか、ログインしてください。",
	}
}

// NewMissingFieldError は必須フィールド未入力エラーを生成する。
func NewMissingFieldError(field string) *APIError {
	return &APIError{
		Code:     ErrCodeMissingField,
		Message:  fmt.Sprintf("必須項目が入力されていません: %s", field),
		Category: "validation",
		Action:   "すべての必須項目を入力してください。",
	}
}

// NewInvalidCredentialsError は認証失敗エラーを生成する。
// メールアドレスとパスワードのどちらが誤っていても同一のエラーを返し、
// どちらが誤りかを開示しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "メールアドレスまたはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewNotLoggedInError は未ログイン状態での操作エラーを生成する。
func NewNotLoggedInError() *APIError {
	return &APIError{
		Code:     ErrCodeNotLoggedIn,
		Message:  "ログインしていません。",
		Category: "auth",
		Action:   "ログインしてから再度お試しください。",
	}
}

// NewInvalidMoodError は未知の気分値エラーを生成する。
func NewInvalidMoodError(mood string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidMood,
		Message:  fmt.Sprintf("無効な気分値です: %s", mood),
		Category: "validation",
		Action:   "excellent、good、neutral、fair、poor のいずれかを指定してください。",
	}
}

// NewInvalidStressLevelError は範囲外のストレスレベルエラーを生成する。
func NewInvalidStressLevelError(level int) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidStressLevel,
		Message:  fmt.Sprintf("無効なストレスレベルです: %d", level),
		Category: "validation",
		Action:   "ストレスレベルは1から5の範囲で指定してください。",
	}
}

// NewInvalidThemeError は未知のテーマ値エラーを生成する。
func NewInvalidThemeError(theme string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidTheme,
		Message:  fmt.Sprintf("無効なテーマです: %s", theme),
		Category: "validation",
		Action:   "light または dark を指定してください。",
	}
}

// NewUnknownViewError は閉じたタブ集合に含まれないビュー名のエラーを生成する。
func NewUnknownViewError(view string) *APIError {
	return &APIError{
		Code:     ErrCodeUnknownView,
		Message:  fmt.Sprintf("存在しないビューです: %s", view),
		Category: "validation",
		Action:   "home、log-mood、history、chat、explore、meditate、resources、profile のいずれかを指定してください。",
	}
}

// NewChatBusyError は送信中の二重チャット送信エラーを生成する。
// 同時に許可される未完了リクエストは1件のみで、後続はキューイングせず破棄する。
func NewChatBusyError() *APIError {
	return &APIError{
		Code:     ErrCodeChatBusy,
		Message:  "前のメッセージへの応答を生成中です。",
		Category: "validation",
		Action:   "応答が完了してから再度送信してください。",
	}
}

// NewInvalidRequestError はリクエストボディ解析失敗エラーを生成する。
func NewInvalidRequestError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  "リクエストボディの解析に失敗しました。",
		Category: "validation",
		Action:   "正しいJSON形式でリクエストしてください。",
	}
}
