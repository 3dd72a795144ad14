package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/pkg/auth"
	"github.com/muthuvel/santhai/pkg/middleware"
	"github.com/muthuvel/santhai/pkg/router"
	"github.com/muthuvel/santhai/pkg/session"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// mountCartRoutes mirrors the /api cart wiring from the route table so
// requests reach the handlers through the real middleware chain.
func mountCartRoutes(ctrl *CartController) *router.Router {
	r := router.New()
	api := r.Group("/api", session.Middleware(session.DefaultOptions()), middleware.MaybeAuth)
	api.Post("/cart", "cart.add", ctrl.Add)

	account := api.Group("", middleware.Auth)
	account.Put("/cart/{id}", "cart.update", ctrl.Update)
	account.Delete("/cart/{id}", "cart.remove", ctrl.Remove)
	return r
}

func newCartController(t *testing.T, db *gorm.DB) (*CartController, *services.CartService) {
	t.Helper()
	settings := services.NewSettingsService(db)
	carts := services.NewCartService(db, settings)
	catalog := services.NewCatalogService(db)
	return NewCartController(carts, catalog), carts
}

func TestCartUpdateAndRemoveByItemID(t *testing.T) {
	db := newTestDB(t)
	ctrl, carts := newCartController(t, db)
	r := mountCartRoutes(ctrl)

	user := seedUser(t, db, "kumar", models.RoleCustomer)
	p := seedProduct(t, db, "VEG-001", 40, 10)
	if err := carts.Add(user.ID, p.ID, 1); err != nil {
		t.Fatalf("seed cart line: %v", err)
	}
	var item models.CartItem
	if err := db.Where("user_id = ?", user.ID).First(&item).Error; err != nil {
		t.Fatalf("load cart line: %v", err)
	}

	token, err := auth.GenerateToken(user.ID, models.RoleCustomer)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/cart/%d", item.ID), strings.NewReader(`{"quantity": 2}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated models.CartItem
	assert.NoError(t, db.First(&updated, item.ID).Error)
	assert.Equal(t, 2.0, updated.Quantity)

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/cart/%d", item.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.ErrorIs(t, db.First(&models.CartItem{}, item.ID).Error, gorm.ErrRecordNotFound)
}

func TestCartUpdateUnknownItemIs404(t *testing.T) {
	db := newTestDB(t)
	ctrl, _ := newCartController(t, db)
	r := mountCartRoutes(ctrl)

	user := seedUser(t, db, "kumar", models.RoleCustomer)
	token, err := auth.GenerateToken(user.ID, models.RoleCustomer)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/api/cart/9999", strings.NewReader(`{"quantity": 1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartAddAcceptsFormBody(t *testing.T) {
	db := newTestDB(t)
	ctrl, _ := newCartController(t, db)
	r := mountCartRoutes(ctrl)

	p := seedProduct(t, db, "VEG-002", 60, 10)

	form := url.Values{
		"product_id": {fmt.Sprint(p.ID)},
		"quantity":   {"0.5"},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env struct {
		Data map[string]interface{} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, true, env.Data["success"])
	assert.EqualValues(t, 1, env.Data["cart_count"])
}
