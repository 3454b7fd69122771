// Package store は永続ストアアダプタを提供する。
// キーに対して不透明なJSON値を読み書きする薄いキーバリュー層であり、
// 値の検証・スキーマ変換・暗号化は行わない。
package store

import (
	"context"
	"errors"
)

// 永続ストアで使用するキー。
const (
	// KeyCurrentUser は現在ログイン中ユーザーのポインタ。
	KeyCurrentUser = "current_user"
	// KeyUsers は登録ユーザーのコレクション。
	KeyUsers = "users"
	// KeyMoodEntries は気分記録のコレクション。
	KeyMoodEntries = "mood_entries"
	// KeyDailyQuote は日替わり名言のキャッシュ。
	KeyDailyQuote = "daily_quote"
)

// ErrNotFound はキーが存在しない場合に返される。
var ErrNotFound = errors.New("store: key not found")

// ErrCorrupted は保存値が期待する形式として解釈できない場合に、
// デコード側からラップして返される。アダプタ自身は値を検証しないため、
// このエラーはエンベロープのデコード時にのみ発生する。
// 呼び出し側はこのエラーを検知した場合、該当キーを欠損として扱い
// デフォルト値にフォールバックする（セッションをクラッシュさせない）。
var ErrCorrupted = errors.New("store: corrupted value")

// Store は永続ストアアダプタのインターフェース。
// すべての変更は即時永続化される（ライトスルー、書き込みバッファなし）。
// read-modify-writeにロックはなく、同一ストアへの並行書き込みは
// 後勝ちとなる（保証される一貫性シナリオではない）。
type Store interface {
	// Get は指定キーの生のJSON値を返す。キーが存在しない場合はErrNotFound。
	Get(ctx context.Context, key string) ([]byte, error)

	// Set は指定キーに値を書き込む。既存値は上書きされる。
	Set(ctx context.Context, key string, value []byte) error

	// Remove は指定キーを削除する。キーが存在しなくてもエラーにしない。
	Remove(ctx context.Context, key string) error
}
