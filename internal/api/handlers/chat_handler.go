package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/electronix/assistant/internal/core"
	"github.com/electronix/assistant/internal/core/chatbot"
)

type ChatHandler struct {
	dbclient core.DbClient
	engine   *chatbot.Engine
}

func NewChatHandler(dbclient core.DbClient, engine *chatbot.Engine) *ChatHandler {
	return &ChatHandler{dbclient: dbclient, engine: engine}
}

type chatRequest struct {
	Message string `json:"message"`
}

// Chat runs one assistant turn for the authenticated user.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value("user_id").(string)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", 400)
		return
	}

	reply, err := h.engine.HandleMessage(ctx, userID, req.Message)
	if err != nil {
		if errors.Is(err, chatbot.ErrEmptyMessage) {
			http.Error(w, "message must be a non-empty string", 400)
			return
		}
		http.Error(w, "chat failed", 500)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"success":     true,
		"reply":       reply.Text,
		"exchange_id": reply.ExchangeID,
	})
}

// History returns the user's full conversation, oldest first.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value("user_id").(string)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	exchanges, err := h.dbclient.ListExchanges(ctx, userID)
	if err != nil {
		http.Error(w, "could not load history", 500)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"success":   true,
		"exchanges": exchanges,
	})
}

func (h *ChatHandler) DeleteExchange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value("user_id").(string)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.dbclient.DeleteExchange(ctx, userID, id); err != nil {
		http.Error(w, "chat message not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{"success": true})
}

func (h *ChatHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value("user_id").(string)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.dbclient.DeleteAllExchanges(ctx, userID); err != nil {
		http.Error(w, "could not clear history", 500)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{"success": true})
}
