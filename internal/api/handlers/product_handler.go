package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/electronix/assistant/internal/core"
	"github.com/electronix/assistant/internal/models"
)

const maxImageUploadBytes = 10 << 20

type ProductHandler struct {
	dbclient     core.DbClient
	objectClient core.ObjectClient
}

func NewProductHandler(dbclient core.DbClient, objectClient core.ObjectClient) *ProductHandler {
	return &ProductHandler{dbclient: dbclient, objectClient: objectClient}
}

type productRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Images      []string           `json:"images"`
	Category    string             `json:"category"`
	Tiers       []models.PriceTier `json:"tiers"`
	Colors      []string           `json:"colors"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", 400)
		return
	}
	if req.Name == "" || req.Category == "" || len(req.Tiers) == 0 {
		http.Error(w, "name, category and at least one price tier are required", 400)
		return
	}

	product := &models.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Images:      req.Images,
		Category:    req.Category,
		Tiers:       req.Tiers,
		Colors:      req.Colors,
		Available:   true,
		CreatedAt:   time.Now(),
	}

	if err := h.dbclient.CreateProduct(r.Context(), product); err != nil {
		http.Error(w, "could not create product", 500)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{"success": true, "product": product})
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", 400)
		return
	}

	product := &models.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Images:      req.Images,
		Category:    req.Category,
		Tiers:       req.Tiers,
		Colors:      req.Colors,
	}

	if err := h.dbclient.UpdateProduct(r.Context(), product); err != nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{"success": true, "product": product})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.dbclient.DeleteProduct(r.Context(), id); err != nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(map[string]any{"success": true})
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.dbclient.GetProductByID(r.Context(), id)
	if err != nil {
		http.Error(w, "could not load product", 500)
		return
	}
	if product == nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{"success": true, "product": product})
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	products, total, err := h.dbclient.ListProducts(r.Context(), page, limit)
	if err != nil {
		http.Error(w, "could not load products", 500)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"success":  true,
		"products": products,
		"total":    total,
		"page":     page,
	})
}

func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		http.Error(w, "category query parameter is required", 400)
		return
	}
	page, limit := pageParams(r)

	products, total, err := h.dbclient.ListProductsByCategory(r.Context(), category, page, limit)
	if err != nil {
		http.Error(w, "could not load products", 500)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"success":  true,
		"products": products,
		"total":    total,
		"page":     page,
	})
}

func (h *ProductHandler) Popular(w http.ResponseWriter, r *http.Request) {
	products, err := h.dbclient.FindPopular(r.Context(), 8)
	if err != nil {
		http.Error(w, "could not load products", 500)
		return
	}
	json.NewEncoder(w).Encode(map[string]any{"success": true, "products": products})
}

func (h *ProductHandler) NewArrivals(w http.ResponseWriter, r *http.Request) {
	products, err := h.dbclient.FindNewArrivals(r.Context(), 8)
	if err != nil {
		http.Error(w, "could not load products", 500)
		return
	}
	json.NewEncoder(w).Encode(map[string]any{"success": true, "products": products})
}

type availabilityRequest struct {
	Available bool `json:"available"`
}

func (h *ProductHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", 400)
		return
	}

	if err := h.dbclient.SetProductAvailability(r.Context(), id, req.Available); err != nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{"success": true})
}

// UploadImage stores a product image in S3 and returns the public URL for the
// admin UI to attach to a product.
func (h *ProductHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", 400)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", 400)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "could not read file", 500)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("products/%s%s", uuid.NewString(), filepath.Ext(header.Filename))
	url, err := h.objectClient.UploadFile(r.Context(), key, data, contentType)
	if err != nil {
		http.Error(w, "upload failed", 500)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{"success": true, "url": url, "key": key})
}

func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 12
	}
	return page, limit
}
