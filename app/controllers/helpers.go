package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/pkg/session"
)

const sessionCartKey = "cart"

// paramUint reads a numeric chi URL parameter.
func paramUint(r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// pageParams reads ?page= and ?per_page= with defaults.
func pageParams(r *http.Request) (page, perPage int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}

// sessionCart reads the anonymous cart out of the redis-backed session.
// Session values round-trip through JSON, so keys come back as strings
// and numbers as float64.
func sessionCart(sess *session.Session) services.SessionCart {
	cart := services.SessionCart{}
	raw, ok := sess.Get(sessionCartKey)
	if !ok {
		return cart
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return cart
	}
	for k, v := range m {
		id, err := strconv.ParseUint(k, 10, 32)
		if err != nil {
			continue
		}
		qty, ok := v.(float64)
		if !ok || qty <= 0 {
			continue
		}
		cart[uint(id)] = qty
	}
	return cart
}

// saveSessionCart writes the anonymous cart back into the session.
func saveSessionCart(sess *session.Session, cart services.SessionCart) {
	m := make(map[string]interface{}, len(cart))
	for id, qty := range cart {
		m[strconv.FormatUint(uint64(id), 10)] = qty
	}
	sess.Set(sessionCartKey, m)
}

// clearSessionCart drops the anonymous cart after a merge.
func clearSessionCart(sess *session.Session) {
	sess.Delete(sessionCartKey)
}
