package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/electronix/assistant/internal/core"
	"github.com/electronix/assistant/internal/models"
)

// stubCartDB overrides only the cart methods; the embedded interface panics
// on anything else, which would flag an unexpected call.
type stubCartDB struct {
	core.DbClient
	cart      models.Cart
	getErr    error
	updated   models.Cart
	updatedBy string
}

func (s *stubCartDB) GetCart(ctx context.Context, userID string) (models.Cart, error) {
	return s.cart, s.getErr
}

func (s *stubCartDB) UpdateCart(ctx context.Context, userID string, cart models.Cart) error {
	s.updatedBy = userID
	s.updated = cart
	return nil
}

func authedRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(r.Context(), "user_id", "u1")
	return r.WithContext(ctx)
}

func TestCartHandlerGet(t *testing.T) {
	db := &stubCartDB{cart: models.Cart{"p1": 2}}
	h := NewCartHandler(db)

	rec := httptest.NewRecorder()
	h.GetCart(rec, authedRequest(http.MethodGet, "/api/cart", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool        `json:"success"`
		Cart    models.Cart `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, models.Cart{"p1": 2}, resp.Cart)
}

func TestCartHandlerGetStoreFailure(t *testing.T) {
	h := NewCartHandler(&stubCartDB{getErr: errors.New("db down")})

	rec := httptest.NewRecorder()
	h.GetCart(rec, authedRequest(http.MethodGet, "/api/cart", ""))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCartHandlerGetRequiresAuth(t *testing.T) {
	h := NewCartHandler(&stubCartDB{})

	rec := httptest.NewRecorder()
	h.GetCart(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartHandlerUpdateReplacesWholesale(t *testing.T) {
	db := &stubCartDB{}
	h := NewCartHandler(db)

	rec := httptest.NewRecorder()
	h.UpdateCart(rec, authedRequest(http.MethodPut, "/api/cart",
		`{"cart":{"p1":3,"p2":0,"p3":-1}}`))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "u1", db.updatedBy)
	// Zero and negative quantities drop the line.
	require.Equal(t, models.Cart{"p1": 3}, db.updated)
}

func TestCartHandlerUpdateEmptyCartClears(t *testing.T) {
	db := &stubCartDB{}
	h := NewCartHandler(db)

	rec := httptest.NewRecorder()
	h.UpdateCart(rec, authedRequest(http.MethodPut, "/api/cart", `{"cart":{}}`))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, db.updated)
	require.Empty(t, db.updated)
}
