// Package theme はUI配色テーマの2状態ステートマシンを提供する。
// 状態はlight/darkの2つのみで、中間状態は存在しない。
package theme

import (
	"sync"

	"github.com/hitoshi/manas/internal/model"
)

// RenderRoot は描画ルートを表す。
// テーマ適用の副作用は、このルートのダークフラグ1つを設定することだけで、
// 他のグローバル状態は関与しない。
type RenderRoot struct {
	mu   sync.RWMutex
	dark bool
}

// NewRenderRoot はライトテーマ状態のRenderRootを生成する。
func NewRenderRoot() *RenderRoot {
	return &RenderRoot{}
}

// SetDark はダークフラグを設定する。
func (r *RenderRoot) SetDark(dark bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dark = dark
}

// Dark は現在のダークフラグを返す。
func (r *RenderRoot) Dark() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dark
}

// Applier はテーマ適用先のインターフェース。
type Applier interface {
	SetDark(dark bool)
}

// Controller はテーマステートマシン。
// 遷移はプロフィール更新・ログイン・ログアウトからのみ発生する。
// 適用は即時かつ冪等で、同一状態の再適用は観測上no-opとなる。
type Controller struct {
	mu      sync.RWMutex
	current model.Theme
	applier Applier
}

// NewController はライト状態で初期化されたControllerを生成する。
func NewController(applier Applier) *Controller {
	return &Controller{
		current: model.ThemeLight,
		applier: applier,
	}
}

// Apply は指定テーマへ遷移し、描画ルートにフラグを反映する。
func (c *Controller) Apply(t model.Theme) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = t
	c.applier.SetDark(t == model.ThemeDark)
}

// Reset はライトテーマへ戻す。ログアウト時に使用する。
func (c *Controller) Reset() {
	c.Apply(model.ThemeLight)
}

// Current は現在のテーマ状態を返す。
func (c *Controller) Current() model.Theme {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}
