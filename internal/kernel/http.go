// Package kernel assembles the HTTP stack: global middleware in order,
// then every application route.
package kernel

import (
	"net/http"
	"time"

	"github.com/muthuvel/santhai/app/routes"
	"github.com/muthuvel/santhai/pkg/metrics"
	"github.com/muthuvel/santhai/pkg/middleware"
	"github.com/muthuvel/santhai/pkg/router"
)

type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel builds the router with the global middleware chain.
// Recovery sits outermost so a panic anywhere below still returns 500.
func NewHTTPKernel() *HTTPKernel {
	r := router.New()
	r.Use(
		middleware.Recovery,
		metrics.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)
	routes.RegisterAPI(r)
	return &HTTPKernel{router: r}
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

func (k *HTTPKernel) Router() *router.Router { return k.router }
