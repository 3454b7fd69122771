// Package model はドメインモデルを定義する。
package model

// Theme はUI配色テーマを表す。
type Theme string

const (
	// ThemeLight はライトテーマ。登録直後のデフォルト。
	ThemeLight Theme = "light"
	// ThemeDark はダークテーマ。
	ThemeDark Theme = "dark"
)

// ParseTheme は文字列をThemeに変換する。
// light/dark以外の入力に対してはfalseを返す。
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), true
	default:
		return "", false
	}
}

// Preferences はユーザーごとの表示設定を表す。
type Preferences struct {
	Theme Theme `json:"theme"`
}

// User はサービス利用ユーザーを表す。
// Passwordは平文で保持・比較される（このシステムの観測仕様をそのまま踏襲している。
// 本番投入時はソルト付きハッシュ照合への置き換えが必要）。
type User struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Password    string      `json:"password,omitempty"`
	Preferences Preferences `json:"preferences"`
}

// WithoutPassword はパスワードを除いたコピーを返す。
// セッションポインタとAPIレスポンスにはこちらを使う。
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}
