package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/manas/internal/model"
)

// ChatServiceInterface はチャットハンドラーが必要とするサービスインターフェース。
type ChatServiceInterface interface {
	Send(ctx context.Context, text string) (model.ChatMessage, error)
	History() []model.ChatMessage
}

// ChatHandler はAIバディチャットのHTTPハンドラー。
type ChatHandler struct {
	service ChatServiceInterface
}

// NewChatHandler はChatHandlerを生成する。
func NewChatHandler(service ChatServiceInterface) *ChatHandler {
	return &ChatHandler{service: service}
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

// Send はユーザーメッセージを送信し、AIバディの返信を返す。
// 生成中の多重送信はCHAT_BUSYで拒否される。
// POST /api/chat
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	reply, err := h.service.Send(r.Context(), req.Message)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reply":    reply,
		"messages": h.service.History(),
	})
}

// History は現在の会話履歴を返す。
// GET /api/chat
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"messages": h.service.History()})
}
