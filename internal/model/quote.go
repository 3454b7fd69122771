// Package model はドメインモデルを定義する。
package model

// QuoteDateLayout は日替わり名言の有効日付フォーマット。
// 暦日単位の一致のみを判定するため、タイムゾーン情報を持たない。
const QuoteDateLayout = "2006-01-02"

// DailyQuote は1日単位でキャッシュされる名言を表す。
// Dateが当日と一致する場合のみ再利用され、それ以外はちょうど1回再取得される。
type DailyQuote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
	Date   string `json:"date"`
}
