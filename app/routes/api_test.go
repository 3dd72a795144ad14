package routes_test

import (
	"testing"

	"github.com/muthuvel/santhai/app/routes"
	"github.com/muthuvel/santhai/pkg/router"
	"github.com/stretchr/testify/assert"
)

// The cart item routes must use the {id} param the handlers read;
// any other name makes every update and remove answer 404.
func TestCartItemRoutesUseIDParam(t *testing.T) {
	r := router.New()
	routes.RegisterAPI(r)

	update, ok := r.Path("cart.update")
	assert.True(t, ok)
	assert.Equal(t, "/api/cart/{id}", update)

	remove, ok := r.Path("cart.remove")
	assert.True(t, ok)
	assert.Equal(t, "/api/cart/{id}", remove)
}
