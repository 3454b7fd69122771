// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ユーザー入力（気分メモ・チャットメッセージ）のプレーンテキストサニタイズと、
// 外部フィード由来の記事HTMLのサニタイズを提供する。
// どちらもbluemondayライブラリの許可リストベースのポリシーを使用する。
package security

import (
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizerService はユーザー自由記述のサニタイズ機能のインターフェースを定義する。
// 気分メモとチャットメッセージの保存・送信前に使用される。
type TextSanitizerService interface {
	// Sanitize は入力からすべてのHTMLタグを除去し、前後の空白を削る。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(s string) string
}

// textSanitizer はTextSanitizerServiceの実装。
// タグを一切許可しないStrictPolicyを保持する。
type textSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer はTextSanitizerServiceの新しいインスタンスを生成する。
func NewTextSanitizer() *textSanitizer {
	return &textSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力からすべてのHTMLタグを除去する。
func (s *textSanitizer) Sanitize(in string) string {
	return strings.TrimSpace(s.policy.Sanitize(in))
}

// ArticleSanitizerService は外部フィード記事HTMLのサニタイズ機能のインターフェースを定義する。
// 記事の保存前およびAPI応答時に使用される。
type ArticleSanitizerService interface {
	// Sanitize はHTMLコンテンツをサニタイズして安全なHTMLを返す。
	// 許可タグのみを通過させ、script, iframe, styleタグおよび
	// on*イベント属性を除去する。
	// aタグにはtarget="_blank"とrel="noopener noreferrer"が自動付与される。
	Sanitize(rawHTML string) string
}

// articleSanitizer はArticleSanitizerServiceの実装。
type articleSanitizer struct {
	policy *bluemonday.Policy
}

// NewArticleSanitizer はArticleSanitizerServiceの新しいインスタンスを生成する。
// ポリシーの内容:
//   - 許可タグ: p, br, a, ul, ol, li, blockquote, pre, code, strong, em, img
//   - imgのsrc属性: httpsスキームのみ許可
//   - aタグ: target="_blank" と rel="noreferrer noopener" を自動付与
func NewArticleSanitizer() *articleSanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br", "ul", "ol", "li",
		"blockquote", "pre", "code",
		"strong", "em",
	)

	// 相対URLは外部フィード由来のコンテンツには不適切なので不許可
	p.AllowAttrs("href").OnElements("a")
	p.AllowRelativeURLs(false)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)

	p.AllowAttrs("src").OnElements("img")
	p.AllowAttrs("alt").OnElements("img")
	p.AllowURLSchemeWithCustomPolicy("https", func(u *url.URL) bool {
		return true
	})

	return &articleSanitizer{
		policy: p,
	}
}

// Sanitize はHTMLコンテンツをサニタイズして安全なHTMLを返す。
func (s *articleSanitizer) Sanitize(rawHTML string) string {
	return s.policy.Sanitize(rawHTML)
}
