package main

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/janisto/hello-huma/internal/http/routes"
	applog "github.com/janisto/hello-huma/internal/platform/logging"
	appmiddleware "github.com/janisto/hello-huma/internal/platform/middleware"
	"github.com/janisto/hello-huma/internal/platform/respond"
)

// maxRequestBody caps request bodies. No route reads one.
const maxRequestBody = 1 << 20

// newRouter builds the complete HTTP handler: middleware, problem-details
// fallbacks and the registered operations.
func newRouter(version string) http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Forwarded-For; only deploy behind a proxy that sets it.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(maxRequestBody),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
		// HEAD is answered by the GET route.
		chimiddleware.GetHead,
	)

	cfg := huma.DefaultConfig("Hello Huma", version)
	// Keep the route table to the registered operations only.
	cfg.OpenAPIPath = ""
	cfg.DocsPath = ""
	cfg.SchemasPath = ""
	api := humachi.New(router, cfg)

	routes.Register(api)
	return router
}
