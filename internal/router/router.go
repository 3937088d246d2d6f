package router

import (
	"net/http"

	"product-api/internal/handler"
	"product-api/internal/middleware"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Banner is the plain-text body served at the root path.
const Banner = "Product API is running"

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	tp trace.TracerProvider,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(Banner))
	})

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// A non-empty id selects a single product; otherwise list everything.
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") != "" {
			productHandler.GetByID(w, r)
			return
		}
		productHandler.List(w, r)
	})
	mux.HandleFunc("POST /products", productHandler.Create)
	mux.HandleFunc("PUT /products", productHandler.Update)
	mux.HandleFunc("DELETE /products", productHandler.Delete)

	// Apply middleware in order: Recovery -> RequestID -> Logging -> Tracing -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.Tracing(tp)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
