// Package content は探索タブ向けの静的カタログ（支援窓口・記事）と、
// 外部フィードからの記事更新を提供する。
package content

// Resource は支援窓口・相談先の1件を表す。
type Resource struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Phone       string `json:"phone,omitempty"`
	Website     string `json:"website"`
	Urgent      bool   `json:"urgent,omitempty"`
}

// Article は探索タブの記事1件を表す。
type Article struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Category string `json:"category"`
	Image    string `json:"image,omitempty"`
	Link     string `json:"link,omitempty"`
}

// builtinResources は組み込みの支援窓口カタログ。
// 緊急・全国・セラピー・地域のカテゴリ順に並ぶ。
var builtinResources = []Resource{
	{
		ID:          "c1",
		Name:        "988 Suicide & Crisis Lifeline",
		Description: "Free, confidential 24/7 support for people in distress, prevention and crisis resources.",
		Category:    "Crisis",
		Phone:       "988",
		Website:     "https://988lifeline.org",
		Urgent:      true,
	},
	{
		ID:          "c2",
		Name:        "Crisis Text Line",
		Description: "Text HOME to 741741 to connect with a Volunteer Crisis Counselor.",
		Category:    "Crisis",
		Phone:       "741741",
		Website:     "https://www.crisistextline.org",
		Urgent:      true,
	},
	{
		ID:          "n1",
		Name:        "NAMI (National Alliance on Mental Illness)",
		Description: "The nation’s largest grassroots mental health organization dedicated to building better lives.",
		Category:    "National",
		Phone:       "1-800-950-NAMI",
		Website:     "https://www.nami.org",
	},
	{
		ID:          "n2",
		Name:        "Mental Health America (MHA)",
		Description: "Leading community-based nonprofit dedicated to addressing the needs of those living with mental illness.",
		Category:    "National",
		Website:     "https://mhanational.org",
	},
	{
		ID:          "t1",
		Name:        "Psychology Today Therapist Finder",
		Description: "Comprehensive directory to find therapists, teletherapy, psychiatrists, and treatment centers.",
		Category:    "Therapy",
		Website:     "https://www.psychologytoday.com/us/therapists",
	},
	{
		ID:          "t2",
		Name:        "Zocdoc",
		Description: "Find and book top-rated local doctors and specialists, including mental health professionals.",
		Category:    "Therapy",
		Website:     "https://www.zocdoc.com",
	},
	{
		ID:          "l1",
		Name:        "SAMHSA Treatment Locator",
		Description: "Confidential and anonymous source of information for persons seeking treatment facilities.",
		Category:    "Local",
		Phone:       "1-800-662-HELP",
		Website:     "https://findtreatment.gov",
	},
}

// builtinArticles は組み込みの記事カタログ。
// 外部フィードが設定されていないとき、または更新に失敗したときに使う。
var builtinArticles = []Article{
	{
		ID:       "1",
		Title:    "Understanding Anxiety",
		Summary:  "A deep dive into the physical and mental symptoms of anxiety and how to manage them.",
		Category: "Education",
		Image:    "https://picsum.photos/seed/anxiety/600/400",
	},
	{
		ID:       "2",
		Title:    "The Power of Mindfulness",
		Summary:  "Simple techniques to bring mindfulness into your daily routine for better mental clarity.",
		Category: "Wellness",
		Image:    "https://picsum.photos/seed/mind/600/400",
	},
	{
		ID:       "3",
		Title:    "Building Resilience",
		Summary:  "How to bounce back from life challenges and strengthen your psychological core.",
		Category: "Growth",
		Image:    "https://picsum.photos/seed/resilience/600/400",
	},
}

// Resources は支援窓口カタログのコピーを返す。
func Resources() []Resource {
	out := make([]Resource, len(builtinResources))
	copy(out, builtinResources)
	return out
}

// BuiltinArticles は組み込み記事カタログのコピーを返す。
func BuiltinArticles() []Article {
	out := make([]Article, len(builtinArticles))
	copy(out, builtinArticles)
	return out
}
