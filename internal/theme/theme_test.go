package theme

import (
	"testing"

	"github.com/hitoshi/manas/internal/model"
)

// 初期状態がライトテーマであることを検証
func TestController_InitialStateIsLight(t *testing.T) {
	root := NewRenderRoot()
	c := NewController(root)

	if c.Current() != model.ThemeLight {
		t.Errorf("Current = %q, want light", c.Current())
	}
	if root.Dark() {
		t.Error("render root should not be dark initially")
	}
}

// Applyが描画ルートのフラグを反映することを検証
func TestController_ApplyDark(t *testing.T) {
	root := NewRenderRoot()
	c := NewController(root)

	c.Apply(model.ThemeDark)

	if c.Current() != model.ThemeDark {
		t.Errorf("Current = %q, want dark", c.Current())
	}
	if !root.Dark() {
		t.Error("render root should be dark after applying dark theme")
	}
}

// 同一状態の再適用が観測上no-opであることを検証
func TestController_ApplyIsIdempotent(t *testing.T) {
	root := NewRenderRoot()
	c := NewController(root)

	c.Apply(model.ThemeDark)
	c.Apply(model.ThemeDark)

	if c.Current() != model.ThemeDark || !root.Dark() {
		t.Error("repeated apply changed observable state")
	}

	c.Apply(model.ThemeLight)
	c.Apply(model.ThemeLight)

	if c.Current() != model.ThemeLight || root.Dark() {
		t.Error("repeated apply of light changed observable state")
	}
}

// Resetがライトテーマへ戻すことを検証
func TestController_Reset(t *testing.T) {
	root := NewRenderRoot()
	c := NewController(root)

	c.Apply(model.ThemeDark)
	c.Reset()

	if c.Current() != model.ThemeLight {
		t.Errorf("Current after Reset = %q, want light", c.Current())
	}
	if root.Dark() {
		t.Error("render root should not be dark after Reset")
	}
}
