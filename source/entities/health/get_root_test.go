package health

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetRoot(t *testing.T) {
	rec := httptest.NewRecorder()
	GetRoot(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"message":"GTM Strategy Portfolio API is running!"}` {
		t.Fatalf("body = %s", got)
	}
}

func TestFallback(t *testing.T) {
	routes := http.NewServeMux()
	routes.HandleFunc("GET /{$}", GetRoot)
	routes.HandleFunc("GET /api/items/{id}", GetRoot)
	routes.HandleFunc(FALLBACK_PATTERN, Fallback(routes))

	tests := []struct {
		method     string
		path       string
		wantStatus int
		wantDetail string
	}{
		{http.MethodGet, "/api/unknown", http.StatusNotFound, "Not Found"},
		{http.MethodPost, "/api/unknown", http.StatusNotFound, "Not Found"},
		{http.MethodPost, "/api/items/a", http.StatusMethodNotAllowed, "Method Not Allowed"},
		{http.MethodDelete, "/api/items/a", http.StatusMethodNotAllowed, "Method Not Allowed"},
		{http.MethodPut, "/", http.StatusMethodNotAllowed, "Method Not Allowed"},
		{http.MethodDelete, "/api/items/a/b", http.StatusNotFound, "Not Found"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

		if rec.Code != tt.wantStatus {
			t.Fatalf("%s %s: status = %d, want %d", tt.method, tt.path, rec.Code, tt.wantStatus)
		}
		if !strings.Contains(rec.Body.String(), `"detail":"`+tt.wantDetail+`"`) {
			t.Fatalf("%s %s: body = %s", tt.method, tt.path, rec.Body.String())
		}
	}
}
