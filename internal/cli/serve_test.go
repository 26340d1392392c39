package cli

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/branchplot/branchplot/pkg/cache"
	"github.com/branchplot/branchplot/pkg/scene"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	story, err := scene.Load()
	if err != nil {
		t.Fatalf("scene.Load() error: %v", err)
	}
	c := New(io.Discard, LogInfo)
	return c.newRouter(story, cache.NewNullCache(), 50)
}

func TestServeIndex(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	for _, title := range []string{
		"Step 1: Initial State",
		"Step 2: After git pull origin main",
		"Step 3: After git merge main",
	} {
		if !strings.Contains(body, title) {
			t.Errorf("index page missing title %q", title)
		}
	}
}

func TestServeScenePNG(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scenes/step1.png", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", got)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("response body should be a PNG")
	}
}

func TestServeUnknownScene(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scenes/step9.png", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
