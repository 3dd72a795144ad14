package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/pkg/auth"
	"github.com/muthuvel/santhai/pkg/middleware"
	"github.com/muthuvel/santhai/pkg/router"
	"github.com/muthuvel/santhai/pkg/session"
	"github.com/stretchr/testify/assert"
)

// A session cart line the merge refuses must come back to the caller as
// a cart_rejects entry, not vanish with the cleared session.
func TestCheckoutShowReportsMergeRejects(t *testing.T) {
	db := newTestDB(t)
	settings := services.NewSettingsService(db)
	carts := services.NewCartService(db, settings)
	checkout := services.NewCheckoutService(db, settings)
	users := services.NewUserService(db)
	ctrl := NewCheckoutController(checkout, carts, users)

	user := seedUser(t, db, "meena", models.RoleCustomer)
	p := seedProduct(t, db, "VEG-003", 60, 2)
	if err := carts.Add(user.ID, p.ID, 2); err != nil {
		t.Fatalf("seed cart line: %v", err)
	}

	// A leftover anonymous cart asking for more than the line can take.
	show := func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromCtx(r)
		saveSessionCart(sess, services.SessionCart{p.ID: 5})
		ctrl.Show(w, r)
	}

	r := router.New()
	r.Get("/api/checkout", "checkout.show", show, session.Middleware(session.DefaultOptions()), middleware.Auth)

	token, err := auth.GenerateToken(user.ID, models.RoleCustomer)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/checkout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env struct {
		Data struct {
			CartRejects []services.MergeReject `json:"cart_rejects"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	if assert.Len(t, env.Data.CartRejects, 1) {
		assert.Equal(t, p.ID, env.Data.CartRejects[0].ProductID)
		assert.Equal(t, 5.0, env.Data.CartRejects[0].Quantity)
	}

	// The persisted line survives the rejected merge untouched.
	var item models.CartItem
	assert.NoError(t, db.Where("user_id = ?", user.ID).First(&item).Error)
	assert.Equal(t, 2.0, item.Quantity)
}
