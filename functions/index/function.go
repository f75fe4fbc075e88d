// Package index deploys the greeting as an HTTP Cloud Function.
package index

import (
	"net/http"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
)

// Message matches the server's GET / body.
const Message = "Hello, world from Huma!"

func init() {
	functions.HTTP("Index", indexHandler)
}

func indexHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
	default:
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write([]byte(Message))
}
