// Package model はドメインモデルを定義する。
package model

// MoodType は気分の自己申告値を表す。
type MoodType string

const (
	// MoodExcellent は最良の気分。
	MoodExcellent MoodType = "excellent"
	// MoodGood は良い気分。
	MoodGood MoodType = "good"
	// MoodNeutral は普通の気分。
	MoodNeutral MoodType = "neutral"
	// MoodFair はやや不調な気分。
	MoodFair MoodType = "fair"
	// MoodPoor は不調な気分。
	MoodPoor MoodType = "poor"
)

// ParseMood は文字列をMoodTypeに変換する。
// 既知の5値以外の入力に対してはfalseを返す。
func ParseMood(s string) (MoodType, bool) {
	switch MoodType(s) {
	case MoodExcellent, MoodGood, MoodNeutral, MoodFair, MoodPoor:
		return MoodType(s), true
	default:
		return "", false
	}
}

// Score は気分のチャート用数値を返す。
// excellent=5, good=4, neutral=3, fair=2, poor=1。未知の値は0。
// 表示専用のマッピングであり、永続化はしない。
func (m MoodType) Score() int {
	switch m {
	case MoodExcellent:
		return 5
	case MoodGood:
		return 4
	case MoodNeutral:
		return 3
	case MoodFair:
		return 2
	case MoodPoor:
		return 1
	default:
		return 0
	}
}

// ストレスレベルの有効範囲。
const (
	StressLevelMin = 1
	StressLevelMax = 5
)

// MoodEntry は1回の気分記録を表す。
// 一度作成されたエントリは変更も削除もされない（追記専用）。
type MoodEntry struct {
	ID          string   `json:"id"`
	Timestamp   int64    `json:"timestamp"` // epochミリ秒
	Mood        MoodType `json:"mood"`
	StressLevel int      `json:"stressLevel"`
	Note        string   `json:"note"`
}
