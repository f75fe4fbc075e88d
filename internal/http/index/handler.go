// Package index serves the service root.
package index

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/hello-huma/internal/platform/logging"
)

// Message is the body of every GET / response.
const Message = "Hello, world from Huma!"

// ContentType is the media type of the greeting. Plain text is written as-is,
// independent of the Accept header.
const ContentType = "text/plain; charset=utf-8"

// Path is where the greeting is mounted.
const Path = "/"

// Register adds GET / to api.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-index",
		Method:      http.MethodGet,
		Path:        Path,
		Summary:     "Greeting",
		Description: "Returns a fixed plain-text greeting.",
	}, getHandler)
}

func getHandler(ctx context.Context, _ *struct{}) (*Output, error) {
	applog.LogDebug(ctx, "index get", zap.String("path", Path))
	return &Output{ContentType: ContentType, Body: []byte(Message)}, nil
}
