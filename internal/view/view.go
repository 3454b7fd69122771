// Package view は閉じたタブ集合に対するビュールーターを提供する。
// 現在タブはメモリ上にのみ保持され、再起動でホームへ戻る。
package view

import (
	"github.com/hitoshi/manas/internal/model"
)

// Tab は画面タブを表す。
type Tab string

const (
	// TabHome はダッシュボード。
	TabHome Tab = "home"
	// TabLogMood は気分記録フォーム。
	TabLogMood Tab = "log-mood"
	// TabHistory は記録履歴。
	TabHistory Tab = "history"
	// TabChat はAIチャット。
	TabChat Tab = "chat"
	// TabExplore は記事一覧。
	TabExplore Tab = "explore"
	// TabMeditate は呼吸法。
	TabMeditate Tab = "meditate"
	// TabResources は支援窓口一覧。
	TabResources Tab = "resources"
	// TabProfile はプロフィール。
	TabProfile Tab = "profile"
)

// allTabs は有効なタブの閉じた集合。ここにない名前は拒否される。
var allTabs = map[Tab]struct{}{
	TabHome:      {},
	TabLogMood:   {},
	TabHistory:   {},
	TabChat:      {},
	TabExplore:   {},
	TabMeditate:  {},
	TabResources: {},
	TabProfile:   {},
}

// ParseTab は文字列をTabに変換する。
// 閉じた集合に含まれない入力に対してはfalseを返す。
func ParseTab(s string) (Tab, bool) {
	t := Tab(s)
	if _, ok := allTabs[t]; !ok {
		return "", false
	}
	return t, true
}

// TrendPoint はトレンドチャートの1点を表す。
// スコアは表示専用の導出値で、永続化されない。
type TrendPoint struct {
	Timestamp   int64 `json:"timestamp"`
	Score       int   `json:"score"`
	StressLevel int   `json:"stressLevel"`
}

// MoodOption は気分記録フォームの選択肢1件を表す。
type MoodOption struct {
	Value model.MoodType `json:"value"`
	Label string         `json:"label"`
	Emoji string         `json:"emoji"`
}

// BreathingPhase はボックス呼吸の1フェーズを表す。
type BreathingPhase struct {
	Name    string `json:"name"`
	Seconds int    `json:"seconds"`
}

// moodOptions は気分記録フォームの選択肢。良い順に並ぶ。
var moodOptions = []MoodOption{
	{Value: model.MoodExcellent, Label: "Excellent", Emoji: "🤩"},
	{Value: model.MoodGood, Label: "Good", Emoji: "😊"},
	{Value: model.MoodNeutral, Label: "Neutral", Emoji: "😐"},
	{Value: model.MoodFair, Label: "Fair", Emoji: "😔"},
	{Value: model.MoodPoor, Label: "Poor", Emoji: "😢"},
}

// breathingCycle はボックス呼吸の4フェーズ（各4秒）。
var breathingCycle = []BreathingPhase{
	{Name: "Inhale", Seconds: 4},
	{Name: "Hold", Seconds: 4},
	{Name: "Exhale", Seconds: 4},
	{Name: "Hold", Seconds: 4},
}

// MoodOptions は気分記録フォームの選択肢のコピーを返す。
func MoodOptions() []MoodOption {
	out := make([]MoodOption, len(moodOptions))
	copy(out, moodOptions)
	return out
}

// BreathingCycle はボックス呼吸のフェーズ列のコピーを返す。
func BreathingCycle() []BreathingPhase {
	out := make([]BreathingPhase, len(breathingCycle))
	copy(out, breathingCycle)
	return out
}
