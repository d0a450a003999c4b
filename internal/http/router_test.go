package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	httpx "github.com/eventica/registration-api/internal/http"
	"github.com/eventica/registration-api/internal/observability"
	"github.com/eventica/registration-api/internal/repo/memory"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	return httpx.NewRouter(httpx.RouterDeps{
		Log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		Store:        memory.NewRegistrationsRepo(),
		MaxBodyBytes: 1 << 20,
	})
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request

	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestCORSHeadersOnEveryResponse(t *testing.T) {
	r := newTestRouter()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/registrations"},
		{http.MethodGet, "/no-such-route"},
		{http.MethodGet, "/healthz"},
	}

	for _, p := range paths {
		w := do(r, p.method, p.path, "")

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Fatalf("%s %s: allow-origin = %q", p.method, p.path, got)
		}

		wantHeaders := "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token"
		if got := w.Header().Get("Access-Control-Allow-Headers"); got != wantHeaders {
			t.Fatalf("%s %s: allow-headers = %q", p.method, p.path, got)
		}

		if got := w.Header().Get("Access-Control-Allow-Methods"); got != "OPTIONS,POST,GET,DELETE" {
			t.Fatalf("%s %s: allow-methods = %q", p.method, p.path, got)
		}
	}
}

func TestPreflight(t *testing.T) {
	r := newTestRouter()

	// preflights short-circuit for any path, no side effects
	for _, path := range []string{"/register", "/registrations", "/anything-at-all"} {
		w := do(r, http.MethodOptions, path, "")

		if w.Code != http.StatusOK {
			t.Fatalf("OPTIONS %s: got status %d, want 200", path, w.Code)
		}

		if w.Body.Len() != 0 {
			t.Fatalf("OPTIONS %s: expected empty body, got %q", path, w.Body.String())
		}
	}
}

func TestRouteNotFound(t *testing.T) {
	r := newTestRouter()

	w := do(r, http.MethodGet, "/nope", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}

	if body["error"] != "Route not found" {
		t.Fatalf("got body %q", w.Body.String())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	r := newTestRouter()

	w := do(r, http.MethodPut, "/register", `{}`)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("got status %d, want 405", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}

	if body["error"] != "Method not allowed" {
		t.Fatalf("got body %q", w.Body.String())
	}
}

func TestHealthRoutes(t *testing.T) {
	r := newTestRouter()

	if w := do(r, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK {
		t.Fatalf("healthz: got status %d", w.Code)
	}

	// nil ping: always ready
	if w := do(r, http.MethodGet, "/readyz", ""); w.Code != http.StatusOK {
		t.Fatalf("readyz: got status %d", w.Code)
	}
}

func TestMetricsRoute(t *testing.T) {
	promReg := prometheus.NewRegistry()

	r := httpx.NewRouter(httpx.RouterDeps{
		Log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		Store:        memory.NewRegistrationsRepo(),
		Prom:         observability.NewProm(promReg),
		Metrics:      promReg,
		MaxBodyBytes: 1 << 20,
	})

	// one request so the http metrics have something to report
	do(r, http.MethodGet, "/healthz", "")

	w := do(r, http.MethodGet, "/metrics", "")

	if w.Code != http.StatusOK {
		t.Fatalf("metrics: got status %d", w.Code)
	}

	if !bytes.Contains(w.Body.Bytes(), []byte("eventica_http_requests_total")) {
		t.Fatalf("metrics output missing request counter")
	}
}

// End-to-end against the in-memory store: create, list, delete, list again.
func TestRegistrationLifecycle(t *testing.T) {
	r := newTestRouter()

	w := do(r, http.MethodPost, "/register", `{
		"firstName": "Ann",
		"lastName": "Lee",
		"email": "ann@example.com",
		"ticketType": "vip",
		"quantity": 2,
		"newsletter": false
	}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("create: got status %d, body=%s", w.Code, w.Body.String())
	}

	var created struct {
		RegistrationID string `json:"registrationId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("create response is not JSON: %v", err)
	}

	w = do(r, http.MethodGet, "/registrations", "")

	var listed struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
		Data    []struct {
			RegistrationID string `json:"registrationId"`
			TotalAmount    int    `json:"totalAmount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("list response is not JSON: %v", err)
	}

	if listed.Count != 1 || listed.Data[0].RegistrationID != created.RegistrationID {
		t.Fatalf("list after create: %s", w.Body.String())
	}

	if listed.Data[0].TotalAmount != 279 {
		t.Fatalf("totalAmount = %d, want 279", listed.Data[0].TotalAmount)
	}

	w = do(r, http.MethodDelete, "/registrations/"+created.RegistrationID, "")

	if w.Code != http.StatusOK {
		t.Fatalf("delete: got status %d, body=%s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodGet, "/registrations", "")

	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("list response is not JSON: %v", err)
	}

	if listed.Count != 0 {
		t.Fatalf("expected empty list after delete, got %s", w.Body.String())
	}

	// deleting again is still a success
	w = do(r, http.MethodDelete, "/registrations/"+created.RegistrationID, "")

	if w.Code != http.StatusOK {
		t.Fatalf("repeat delete: got status %d", w.Code)
	}
}
