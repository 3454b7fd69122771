package view

import (
	"context"
	"strings"
	"sync"

	"github.com/hitoshi/manas/internal/content"
	"github.com/hitoshi/manas/internal/model"
)

// homeTrendWindow はホーム画面のトレンドに使う直近エントリ数。
const homeTrendWindow = 7

// homeSubtitle はホーム画面の定型サブタイトル。
const homeSubtitle = "Take a deep breath. You're in a safe space."

// SessionReader は現在ユーザーの読み取りインターフェース。
type SessionReader interface {
	Current(ctx context.Context) *model.User
}

// MoodReader は気分ログの読み取りインターフェース。
type MoodReader interface {
	Entries(ctx context.Context) []model.MoodEntry
	EntriesNewestFirst(ctx context.Context) []model.MoodEntry
	Recent(ctx context.Context, n int) []model.MoodEntry
	AverageStress(ctx context.Context) float64
}

// QuoteProvider は日替わり名言の取得インターフェース。
type QuoteProvider interface {
	Today(ctx context.Context) (model.DailyQuote, error)
}

// ChatReader はチャット会話の読み取りとリセットのインターフェース。
type ChatReader interface {
	History() []model.ChatMessage
	Pending() bool
	Reset()
}

// InsightProvider はインサイト生成のインターフェース。
type InsightProvider interface {
	Insight(ctx context.Context, entries []model.MoodEntry) string
}

// ArticleProvider は記事カタログの取得インターフェース。
type ArticleProvider interface {
	Articles() []content.Article
}

// HomeView はホーム画面のペイロード。
type HomeView struct {
	Greeting      string           `json:"greeting"`
	Subtitle      string           `json:"subtitle"`
	Trend         []TrendPoint     `json:"trend"`
	AverageStress float64          `json:"averageStress"`
	EntryCount    int              `json:"entryCount"`
	Quote         model.DailyQuote `json:"quote"`
	Insight       string           `json:"insight"`
}

// LogMoodView は気分記録フォームのペイロード。
type LogMoodView struct {
	Options   []MoodOption `json:"options"`
	StressMin int          `json:"stressMin"`
	StressMax int          `json:"stressMax"`
}

// HistoryView は記録履歴のペイロード。新しい順。
type HistoryView struct {
	Entries []model.MoodEntry `json:"entries"`
}

// ChatView はチャット画面のペイロード。
type ChatView struct {
	Messages []model.ChatMessage `json:"messages"`
	Pending  bool                `json:"pending"`
}

// ExploreView は記事一覧のペイロード。
type ExploreView struct {
	Articles []content.Article `json:"articles"`
}

// MeditateView は呼吸法画面のペイロード。静的。
type MeditateView struct {
	Technique string           `json:"technique"`
	Cycle     []BreathingPhase `json:"cycle"`
}

// ResourcesView は支援窓口一覧のペイロード。
type ResourcesView struct {
	Resources []content.Resource `json:"resources"`
}

// ProfileView はプロフィール画面のペイロード。
type ProfileView struct {
	User  *model.User `json:"user"`
	Theme model.Theme `json:"theme"`
}

// Router はビュールーター。現在タブ1つだけを状態として持つ。
type Router struct {
	mu       sync.Mutex
	current  Tab
	session  SessionReader
	moods    MoodReader
	quotes   QuoteProvider
	chat     ChatReader
	insights InsightProvider
	articles ArticleProvider
}

// NewRouter はホームタブで初期化されたRouterを生成する。
func NewRouter(
	session SessionReader,
	moods MoodReader,
	quotes QuoteProvider,
	chat ChatReader,
	insights InsightProvider,
	articles ArticleProvider,
) *Router {
	return &Router{
		current:  TabHome,
		session:  session,
		moods:    moods,
		quotes:   quotes,
		chat:     chat,
		insights: insights,
		articles: articles,
	}
}

// Current は現在のタブを返す。
func (r *Router) Current() Tab {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Navigate は指定タブへ遷移する。
// 閉じた集合に含まれない名前はUNKNOWN_VIEWで拒否する。
// チャットタブから離れるとき、メモリ上の会話はクリアされる。
func (r *Router) Navigate(name string) (Tab, error) {
	tab, ok := ParseTab(name)
	if !ok {
		return "", model.NewUnknownViewError(name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == TabChat && tab != TabChat {
		r.chat.Reset()
	}
	r.current = tab
	return tab, nil
}

// NavigateHome はホームタブへ遷移する。気分記録の完了時に使う。
func (r *Router) NavigateHome() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == TabChat {
		r.chat.Reset()
	}
	r.current = TabHome
}

// Build は現在タブのビューペイロードを構築する。
// タブの閉じた集合を網羅するswitchで、未知の分岐は存在しない。
func (r *Router) Build(ctx context.Context) (any, error) {
	switch r.Current() {
	case TabHome:
		return r.buildHome(ctx)

	case TabLogMood:
		return LogMoodView{
			Options:   MoodOptions(),
			StressMin: model.StressLevelMin,
			StressMax: model.StressLevelMax,
		}, nil

	case TabHistory:
		return HistoryView{
			Entries: r.moods.EntriesNewestFirst(ctx),
		}, nil

	case TabChat:
		return ChatView{
			Messages: r.chat.History(),
			Pending:  r.chat.Pending(),
		}, nil

	case TabExplore:
		return ExploreView{
			Articles: r.articles.Articles(),
		}, nil

	case TabMeditate:
		return MeditateView{
			Technique: "Box Breathing",
			Cycle:     BreathingCycle(),
		}, nil

	case TabResources:
		return ResourcesView{
			Resources: content.Resources(),
		}, nil

	case TabProfile:
		user := r.session.Current(ctx)
		theme := model.ThemeLight
		if user != nil {
			theme = user.Preferences.Theme
		}
		return ProfileView{
			User:  user,
			Theme: theme,
		}, nil

	default:
		// ParseTabが閉じた集合を保証するため到達しない
		return nil, model.NewUnknownViewError(string(r.Current()))
	}
}

func (r *Router) buildHome(ctx context.Context) (HomeView, error) {
	greeting := "Welcome"
	if user := r.session.Current(ctx); user != nil {
		first, _, _ := strings.Cut(user.Name, " ")
		if first != "" {
			greeting = "Welcome, " + first
		}
	}

	entries := r.moods.Entries(ctx)
	recent := r.moods.Recent(ctx, homeTrendWindow)

	trend := make([]TrendPoint, 0, len(recent))
	for _, e := range recent {
		trend = append(trend, TrendPoint{
			Timestamp:   e.Timestamp,
			Score:       e.Mood.Score(),
			StressLevel: e.StressLevel,
		})
	}

	dq, err := r.quotes.Today(ctx)
	if err != nil {
		return HomeView{}, err
	}

	return HomeView{
		Greeting:      greeting,
		Subtitle:      homeSubtitle,
		Trend:         trend,
		AverageStress: r.moods.AverageStress(ctx),
		EntryCount:    len(entries),
		Quote:         dq,
		Insight:       r.insights.Insight(ctx, entries),
	}, nil
}
