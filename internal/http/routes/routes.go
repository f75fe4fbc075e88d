// Package routes is the single place where operations are attached to the API.
package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/hello-huma/internal/http/index"
)

// Register wires every operation into api. The service exposes exactly one:
// GET /.
func Register(api huma.API) {
	index.Register(api)
}
