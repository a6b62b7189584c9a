package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/electronix/assistant/internal/core"
	"github.com/electronix/assistant/internal/models"
)

type CartHandler struct {
	dbclient core.DbClient
}

func NewCartHandler(dbclient core.DbClient) *CartHandler {
	return &CartHandler{dbclient: dbclient}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value("user_id").(string)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	cart, err := h.dbclient.GetCart(ctx, userID)
	if err != nil {
		http.Error(w, "could not load cart", 500)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{"success": true, "cart": cart})
}

type updateCartRequest struct {
	Cart models.Cart `json:"cart"`
}

// UpdateCart replaces the stored cart with the submitted one; quantities of
// zero or less drop the line.
func (h *CartHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value("user_id").(string)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req updateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", 400)
		return
	}

	cart := models.Cart{}
	for id, qty := range req.Cart {
		if qty > 0 {
			cart[id] = qty
		}
	}

	if err := h.dbclient.UpdateCart(ctx, userID, cart); err != nil {
		http.Error(w, "could not update cart", 500)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{"success": true, "cart": cart})
}
