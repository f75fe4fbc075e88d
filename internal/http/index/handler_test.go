package index

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	applog "github.com/janisto/hello-huma/internal/platform/logging"
	appmiddleware "github.com/janisto/hello-huma/internal/platform/middleware"
	"github.com/janisto/hello-huma/internal/platform/respond"
)

func newTestRouter() chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("IndexTest", "test"))
	Register(api)
	return router
}

func get(t *testing.T, router http.Handler, accept string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "index-get")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestGetReturnsGreeting(t *testing.T) {
	resp := get(t, newTestRouter(), "")

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != ContentType {
		t.Errorf("expected %s, got %s", ContentType, ct)
	}
	if got := resp.Body.String(); got != Message {
		t.Fatalf("expected body %q, got %q", Message, got)
	}
}

func TestGetIgnoresAccept(t *testing.T) {
	router := newTestRouter()

	for _, accept := range []string{"application/json", "application/cbor", "*/*", "text/html"} {
		t.Run(accept, func(t *testing.T) {
			resp := get(t, router, accept)

			if resp.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", resp.Code)
			}
			if ct := resp.Header().Get("Content-Type"); ct != ContentType {
				t.Errorf("expected %s, got %s", ContentType, ct)
			}
			if got := resp.Body.String(); got != Message {
				t.Fatalf("expected body %q, got %q", Message, got)
			}
		})
	}
}

func TestGetIsDeterministicUnderConcurrency(t *testing.T) {
	router := newTestRouter()

	const workers = 64
	bodies := make([]string, workers)
	codes := make([]int, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
			bodies[i] = resp.Body.String()
			codes[i] = resp.Code
		}(i)
	}
	wg.Wait()

	for i := range workers {
		if codes[i] != http.StatusOK || bodies[i] != Message {
			t.Fatalf("request %d: got %d %q", i, codes[i], bodies[i])
		}
	}
}

func TestHandlerNeverFails(t *testing.T) {
	for range 3 {
		out, err := getHandler(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out.Body) != Message || out.ContentType != ContentType {
			t.Fatalf("unexpected output: %+v", out)
		}
	}
}

func TestRegisterDocumentsOperation(t *testing.T) {
	api := humachi.New(chi.NewRouter(), huma.DefaultConfig("IndexTest", "test"))
	Register(api)

	item, ok := api.OpenAPI().Paths[Path]
	if !ok || item.Get == nil {
		t.Fatalf("expected GET %s in OpenAPI paths", Path)
	}
	if item.Get.OperationID != "get-index" {
		t.Fatalf("unexpected operation id %q", item.Get.OperationID)
	}
	if item.Post != nil || item.Put != nil || item.Delete != nil || item.Patch != nil {
		t.Fatal("expected only GET to be registered")
	}
}
