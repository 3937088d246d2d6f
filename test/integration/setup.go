package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"product-api/internal/database/dbtest"
	"product-api/internal/handler"
	"product-api/internal/repository"
	"product-api/internal/router"
	"product-api/internal/service"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// TestServer bundles the wired HTTP handler with its backing database.
type TestServer struct {
	DB      *dbtest.TestDB
	Handler http.Handler
}

// SetupTestServer starts PostgreSQL and wires repository, service, handler
// and router the way the serve command does.
func SetupTestServer(t *testing.T, tp trace.TracerProvider) *TestServer {
	t.Helper()

	testDB := dbtest.Setup(t)
	logger := zerolog.Nop()

	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	productService := service.NewProductService(productRepo, logger)
	productHandler := handler.NewProductHandler(productService, logger)

	return &TestServer{
		DB:      testDB,
		Handler: router.New(productHandler, tp, logger),
	}
}

// Do sends a request with an optional JSON body and returns the recorder.
func (s *TestServer) Do(t *testing.T, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()

	s.Handler.ServeHTTP(w, req)

	return w
}

// Decode unmarshals the recorder body into v.
func Decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}
