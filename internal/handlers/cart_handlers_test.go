package handlers

import (
	"net/http"
	"testing"
	"time"

	"dinepos/internal/models"
	"dinepos/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddCartItemCopiesCatalogPrice(t *testing.T) {
	sessions := session.NewManager(time.Hour)
	sess := loggedInSession(sessions)

	catalogSvc := new(MockCatalogService)
	catalogSvc.On("GetItem", mock.Anything, int64(1)).
		Return(&models.MenuItem{ID: 1, Name: "Burger", Price: 8.00}, nil)

	h := NewCartHandlers(sessions, catalogSvc)
	c, rec := newAuthedContext(t, http.MethodPost, "/v1/cart/items", `{"item_id":1,"quantity":2}`, 7, sess.ID)

	require.NoError(t, h.AddCartItem(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	lines, total, ok := sessions.CartSnapshot(sess.ID)
	require.True(t, ok)
	require.Len(t, lines, 1)
	assert.Equal(t, models.CartLine{ItemID: 1, Name: "Burger", UnitPrice: 8.00, Quantity: 2, LineTotal: 16.00}, lines[0])
	assert.Equal(t, 16.00, total)
}

func TestAddCartItemDuplicatesStaySeparate(t *testing.T) {
	sessions := session.NewManager(time.Hour)
	sess := loggedInSession(sessions)

	catalogSvc := new(MockCatalogService)
	catalogSvc.On("GetItem", mock.Anything, int64(1)).
		Return(&models.MenuItem{ID: 1, Name: "Burger", Price: 8.00}, nil)

	h := NewCartHandlers(sessions, catalogSvc)

	for i := 0; i < 2; i++ {
		c, rec := newAuthedContext(t, http.MethodPost, "/v1/cart/items", `{"item_id":1,"quantity":1}`, 7, sess.ID)
		require.NoError(t, h.AddCartItem(c))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	lines, total, _ := sessions.CartSnapshot(sess.ID)
	assert.Len(t, lines, 2)
	assert.Equal(t, 16.00, total)
}

func TestAddCartItemVanishedItem(t *testing.T) {
	sessions := session.NewManager(time.Hour)
	sess := loggedInSession(sessions)

	catalogSvc := new(MockCatalogService)
	catalogSvc.On("GetItem", mock.Anything, int64(999)).Return(nil, nil)

	h := NewCartHandlers(sessions, catalogSvc)
	c, rec := newAuthedContext(t, http.MethodPost, "/v1/cart/items", `{"item_id":999,"quantity":1}`, 7, sess.ID)

	require.NoError(t, h.AddCartItem(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	lines, _, _ := sessions.CartSnapshot(sess.ID)
	assert.Empty(t, lines)
}

func TestAddCartItemRejectsZeroQuantity(t *testing.T) {
	sessions := session.NewManager(time.Hour)
	sess := loggedInSession(sessions)

	catalogSvc := new(MockCatalogService)
	h := NewCartHandlers(sessions, catalogSvc)
	c, rec := newAuthedContext(t, http.MethodPost, "/v1/cart/items", `{"item_id":1,"quantity":0}`, 7, sess.ID)

	require.NoError(t, h.AddCartItem(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	catalogSvc.AssertNotCalled(t, "GetItem", mock.Anything, mock.Anything)
}

func TestClearCart(t *testing.T) {
	sessions := session.NewManager(time.Hour)
	sess := loggedInSession(sessions)
	sessions.AddToCart(sess.ID, 1, "Burger", 8.00, 2)

	h := NewCartHandlers(sessions, new(MockCatalogService))
	c, rec := newAuthedContext(t, http.MethodDelete, "/v1/cart", "", 7, sess.ID)

	require.NoError(t, h.ClearCart(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	lines, total, ok := sessions.CartSnapshot(sess.ID)
	require.True(t, ok)
	assert.Empty(t, lines)
	assert.Equal(t, 0.0, total)
}

func TestGetCartEmpty(t *testing.T) {
	sessions := session.NewManager(time.Hour)
	sess := loggedInSession(sessions)

	h := NewCartHandlers(sessions, new(MockCatalogService))
	c, rec := newAuthedContext(t, http.MethodGet, "/v1/cart", "", 7, sess.ID)

	require.NoError(t, h.GetCart(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":0`)
}
