package controllers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/pkg/session"
	"github.com/stretchr/testify/assert"
)

func TestParamUint(t *testing.T) {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "42")
	r := httptest.NewRequest("GET", "/products/42", nil)
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

	id, ok := paramUint(r, "id")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	rctx = chi.NewRouteContext()
	rctx.URLParams.Add("id", "zero")
	r = httptest.NewRequest("GET", "/products/zero", nil)
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

	_, ok = paramUint(r, "id")
	assert.False(t, ok)
}

func TestPageParams(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?page=3&per_page=50", nil)
	page, perPage := pageParams(r)
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, perPage)

	r = httptest.NewRequest("GET", "/products?page=-1&per_page=5000", nil)
	page, perPage = pageParams(r)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, perPage)
}

func TestSessionCartRoundTrip(t *testing.T) {
	r := httptest.NewRequest("GET", "/cart", nil)
	sess := session.FromCtx(r)

	saveSessionCart(sess, services.SessionCart{3: 1.5, 7: 0.25})

	got := sessionCart(sess)
	assert.Equal(t, services.SessionCart{3: 1.5, 7: 0.25}, got)

	clearSessionCart(sess)
	assert.Empty(t, sessionCart(sess))
}

func TestSessionCartSkipsGarbage(t *testing.T) {
	r := httptest.NewRequest("GET", "/cart", nil)
	sess := session.FromCtx(r)

	// Simulate a session that round-tripped through JSON with junk in it.
	sess.Set(sessionCartKey, map[string]interface{}{
		"3":    2.0,
		"zero": 1.0,
		"5":    "two",
		"9":    -1.0,
	})

	got := sessionCart(sess)
	assert.Equal(t, services.SessionCart{3: 2.0}, got)
}
