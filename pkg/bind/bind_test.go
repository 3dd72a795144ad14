package bind_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/muthuvel/santhai/pkg/bind"
	"github.com/stretchr/testify/assert"
)

type addToCartInput struct {
	ProductID uint    `json:"product_id" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestRequestDecodesJSON(t *testing.T) {
	var in addToCartInput
	errs, err := bind.Request(jsonRequest(`{"product_id": 3, "quantity": 1.5}`), &in)

	assert.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, uint(3), in.ProductID)
	assert.Equal(t, 1.5, in.Quantity)
}

func TestRequestDecodesForm(t *testing.T) {
	var in addToCartInput
	errs, err := bind.Request(formRequest(url.Values{
		"product_id": {"3"},
		"quantity":   {"1.5"},
	}), &in)

	assert.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, uint(3), in.ProductID)
	assert.Equal(t, 1.5, in.Quantity)
}

func TestRequestFormContentTypeWithCharset(t *testing.T) {
	form := url.Values{"product_id": {"7"}, "quantity": {"0.25"}}
	req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")

	var in addToCartInput
	errs, err := bind.Request(req, &in)

	assert.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, uint(7), in.ProductID)
}

func TestRequestFormValidation(t *testing.T) {
	var in addToCartInput
	errs, err := bind.Request(formRequest(url.Values{
		"quantity": {"0"},
	}), &in)

	assert.NoError(t, err)
	assert.Contains(t, errs, "product_id")
	assert.Contains(t, errs, "quantity")
}

func TestRequestFormBadNumber(t *testing.T) {
	var in addToCartInput
	errs, err := bind.Request(formRequest(url.Values{
		"product_id": {"3"},
		"quantity":   {"two"},
	}), &in)

	assert.Error(t, err)
	assert.Nil(t, errs)
}

func TestRequestMalformedJSON(t *testing.T) {
	var in addToCartInput
	errs, err := bind.Request(jsonRequest(`{"product_id":`), &in)

	assert.Error(t, err)
	assert.Nil(t, errs)
}
