package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/electronix/assistant/internal/core"
	"github.com/electronix/assistant/internal/models"
)

type FaqHandler struct {
	dbclient core.DbClient
}

func NewFaqHandler(dbclient core.DbClient) *FaqHandler {
	return &FaqHandler{dbclient: dbclient}
}

type faqRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (h *FaqHandler) List(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.dbclient.ListFaqs(r.Context())
	if err != nil {
		http.Error(w, "could not load faqs", 500)
		return
	}
	json.NewEncoder(w).Encode(map[string]any{"success": true, "faqs": faqs})
}

func (h *FaqHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req faqRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", 400)
		return
	}
	if req.Question == "" || req.Answer == "" {
		http.Error(w, "question and answer are required", 400)
		return
	}

	faq := &models.Faq{
		ID:       uuid.NewString(),
		Question: req.Question,
		Answer:   req.Answer,
	}
	if err := h.dbclient.CreateFaq(r.Context(), faq); err != nil {
		http.Error(w, "could not create faq", 500)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{"success": true, "faq": faq})
}

func (h *FaqHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req faqRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", 400)
		return
	}

	faq := &models.Faq{ID: id, Question: req.Question, Answer: req.Answer}
	if err := h.dbclient.UpdateFaq(r.Context(), faq); err != nil {
		http.Error(w, "faq not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{"success": true, "faq": faq})
}

func (h *FaqHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.dbclient.DeleteFaq(r.Context(), id); err != nil {
		http.Error(w, "faq not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(map[string]any{"success": true})
}
