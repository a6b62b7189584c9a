package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/electronix/assistant/internal/core"
	"github.com/electronix/assistant/internal/models"
)

type OrderHandler struct {
	dbclient core.DbClient
}

func NewOrderHandler(dbclient core.DbClient) *OrderHandler {
	return &OrderHandler{dbclient: dbclient}
}

type placeOrderRequest struct {
	Items     []string `json:"items"`
	Total     int      `json:"total"`
	PayMethod string   `json:"pay_method"`
	Address   string   `json:"address"`
	Phone     string   `json:"phone"`
	Recipient string   `json:"recipient"`
}

// PlaceOrder creates an order with a human-readable ID the chatbot can later
// look up (ORD + millisecond timestamp).
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value("user_id").(string)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", 400)
		return
	}
	if len(req.Items) == 0 {
		http.Error(w, "order must contain at least one item", 400)
		return
	}

	now := time.Now()
	order := &models.Order{
		OrderID:   fmt.Sprintf("ORD%d", now.UnixMilli()),
		UserID:    userID,
		Items:     req.Items,
		Total:     req.Total,
		Status:    "Pending",
		PlacedAt:  now,
		UpdatedAt: now,
		PayMethod: req.PayMethod,
		Address:   req.Address,
		Phone:     req.Phone,
		Recipient: req.Recipient,
	}

	if err := h.dbclient.CreateOrder(ctx, order); err != nil {
		http.Error(w, "could not place order", 500)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{"success": true, "order": order})
}

func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value("user_id").(string)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	page, limit := pageParams(r)
	orders, total, err := h.dbclient.ListOrdersByUser(ctx, userID, page, limit)
	if err != nil {
		http.Error(w, "could not load orders", 500)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"orders":  orders,
		"total":   total,
		"page":    page,
	})
}

func (h *OrderHandler) AllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.dbclient.ListAllOrders(r.Context())
	if err != nil {
		http.Error(w, "could not load orders", 500)
		return
	}
	json.NewEncoder(w).Encode(map[string]any{"success": true, "orders": orders})
}

type orderStatusRequest struct {
	UserID  string `json:"user_id"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

var validOrderStatuses = map[string]bool{
	"Pending":   true,
	"Confirmed": true,
	"Shipped":   true,
	"Delivered": true,
	"Cancelled": true,
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req orderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", 400)
		return
	}
	if !validOrderStatuses[req.Status] {
		http.Error(w, "invalid status", 400)
		return
	}

	if err := h.dbclient.UpdateOrderStatus(r.Context(), req.UserID, req.OrderID, req.Status); err != nil {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{"success": true})
}
