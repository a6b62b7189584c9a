package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/electronix/assistant/internal/core"
	"github.com/electronix/assistant/internal/models"
)

type SocialHandler struct {
	dbclient core.DbClient
}

func NewSocialHandler(dbclient core.DbClient) *SocialHandler {
	return &SocialHandler{dbclient: dbclient}
}

type socialLinkRequest struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Icon     string `json:"icon"`
}

func (h *SocialHandler) List(w http.ResponseWriter, r *http.Request) {
	links, err := h.dbclient.ListSocialLinks(r.Context())
	if err != nil {
		http.Error(w, "could not load social links", 500)
		return
	}
	json.NewEncoder(w).Encode(map[string]any{"success": true, "links": links})
}

// Upsert creates or replaces the link for a platform, so the admin UI can
// post the same payload without caring whether one exists.
func (h *SocialHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req socialLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", 400)
		return
	}
	if req.Platform == "" || req.URL == "" {
		http.Error(w, "platform and url are required", 400)
		return
	}

	link := &models.SocialLink{
		ID:       uuid.NewString(),
		Platform: req.Platform,
		URL:      req.URL,
		Icon:     req.Icon,
	}
	if err := h.dbclient.UpsertSocialLink(r.Context(), link); err != nil {
		http.Error(w, "could not save social link", 500)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{"success": true, "link": link})
}

func (h *SocialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.dbclient.DeleteSocialLink(r.Context(), id); err != nil {
		http.Error(w, "social link not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(map[string]any{"success": true})
}
