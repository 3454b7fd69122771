// Package model はドメインモデルを定義する。
package model

// ChatRole はチャットメッセージの発話者を表す。
type ChatRole string

const (
	// ChatRoleUser はユーザーの発話。
	ChatRoleUser ChatRole = "user"
	// ChatRoleModel はアシスタントの発話。
	ChatRoleModel ChatRole = "model"
)

// ChatMessage は1件のチャット発話を表す。
// 会話はメモリ上にのみ保持され、永続化されない。
// チャット画面から離れると失われる（意図された制限）。
type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}
