// Package assistant はGemini APIを使ったAIコンパニオン機能を提供する。
// チャット応答、日替わり名言、気分ログに基づくインサイトの3種類の生成を行う。
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/hitoshi/manas/internal/model"
)

// systemInstruction はチャット応答のシステム指示。
// 医療行為を行わないこと、深刻な苦痛の表明には専門窓口を案内することを定める。
const systemInstruction = `
You are "Manas Buddy," a warm, empathetic, and supportive AI companion for a mental health awareness app called Manas.
Your goal is to provide supportive listening, helpful information about mental health, and suggest healthy coping mechanisms.
You are NOT a doctor or a licensed therapist. If a user expresses severe distress or thoughts of self-harm, gently and firmly provide resources for emergency hotlines and professional help.
Keep your responses concise, comforting, and conversational.
`

// quotePrompt は日替わり名言の生成プロンプト。
const quotePrompt = "Generate a short, powerful, and calming inspirational quote for a mental health app. Focus on themes of peace, resilience, or mindfulness. Include the author's name."

// insightPromptPrefix はインサイト生成プロンプトの前置き。気分ログが後続する。
const insightPromptPrefix = "Based on my recent mood logs, give me a short, 2-sentence empathetic insight and one small actionable tip for my mental well-being. Keep it friendly and supportive."

// insightEntryLimit はインサイト生成に使う直近エントリの最大数。
const insightEntryLimit = 5

// Generator はAI生成バックエンドのインターフェース。
// テストではフェイク実装に差し替える。
type Generator interface {
	// Chat は会話履歴と新規メッセージからチャット応答を生成する。
	Chat(ctx context.Context, history []model.ChatMessage, message string) (string, error)
	// Quote は名言のテキストと著者名を生成する。
	Quote(ctx context.Context) (text, author string, err error)
	// Insight は気分ログからインサイト文を生成する。
	Insight(ctx context.Context, entries []model.MoodEntry) (string, error)
}

// GeminiClient はGeneratorのGemini API実装。
type GeminiClient struct {
	client *genai.Client
	model  string
}

var _ Generator = (*GeminiClient)(nil)

// NewGeminiClient はGeminiClientの新しいインスタンスを生成する。
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini APIキーが設定されていません")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの生成に失敗しました: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  modelName,
	}, nil
}

// Chat は会話履歴と新規メッセージからチャット応答を生成する。
// 温度0.7、システム指示付き。
func (c *GeminiClient) Chat(ctx context.Context, history []model.ChatMessage, message string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		var role genai.Role = genai.RoleUser
		if msg.Role == model.ChatRoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.7),
	})
	if err != nil {
		return "", fmt.Errorf("チャット応答の生成に失敗しました: %w", err)
	}

	return resp.Text(), nil
}

// Quote は名言のテキストと著者名を生成する。
// JSONスキーマ付きのレスポンス形式を指定し、構造化された応答を受け取る。
func (c *GeminiClient) Quote(ctx context.Context) (string, string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(quotePrompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"text":   {Type: genai.TypeString},
					"author": {Type: genai.TypeString},
				},
				Required: []string{"text", "author"},
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("名言の生成に失敗しました: %w", err)
	}

	var parsed struct {
		Text   string `json:"text"`
		Author string `json:"author"`
	}
	if err := json.Unmarshal([]byte(resp.Text()), &parsed); err != nil {
		return "", "", fmt.Errorf("名言レスポンスの解析に失敗しました: %w", err)
	}

	return parsed.Text, parsed.Author, nil
}

// Insight は直近の気分ログからインサイト文を生成する。温度0.8。
// 直近5件のみをプロンプトへ含める。
func (c *GeminiClient) Insight(ctx context.Context, entries []model.MoodEntry) (string, error) {
	recent := entries
	if len(recent) > insightEntryLimit {
		recent = recent[len(recent)-insightEntryLimit:]
	}

	lines := make([]string, 0, len(recent))
	for _, e := range recent {
		date := time.UnixMilli(e.Timestamp).Format("2006-01-02")
		lines = append(lines, fmt.Sprintf("Date: %s, Mood: %s, Stress: %d/5, Note: %s", date, e.Mood, e.StressLevel, e.Note))
	}

	prompt := fmt.Sprintf("%s\n\nLogs:\n%s", insightPromptPrefix, strings.Join(lines, "\n"))

	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr[float32](0.8),
		})
	if err != nil {
		return "", fmt.Errorf("インサイトの生成に失敗しました: %w", err)
	}

	return resp.Text(), nil
}
