package cmd

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rubiojr/fhsearch/pkg/config"
	"github.com/rubiojr/fhsearch/pkg/funeralhomes"
	"github.com/rubiojr/fhsearch/pkg/log"
)

// newUpstream serves total records named "Home <id>". Requests carrying
// city=Nowhere match nothing.
func newUpstream(t *testing.T, total int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		n := total
		if q.Get("city") == "Nowhere" {
			n = 0
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/funeral-homes/count":
			fmt.Fprintf(w, `{"total": %d}`, n)
		case "/funeral-homes":
			limit, _ := strconv.Atoi(q.Get("limit"))
			offset, _ := strconv.Atoi(q.Get("offset"))
			var rows []string
			for id := offset + 1; id <= offset+limit && id <= n; id++ {
				rows = append(rows, fmt.Sprintf(`{"internal_id": %d, "name": "Home %d", "city": "Springfield"}`, id, id))
			}
			fmt.Fprintf(w, "[%s]", strings.Join(rows, ","))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupTestWebServer(t *testing.T, baseURL string) *WebServer {
	t.Helper()
	log.SetOutput(io.Discard)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return newWebServer(funeralhomes.New(baseURL))
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", target, nil))
	return w
}

func TestWebHome(t *testing.T) {
	up := newUpstream(t, 40)
	s := setupTestWebServer(t, up.URL)

	w := get(t, s.Handler(), "/?name=Home&page=2")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Expected HTML content type, got %q", ct)
	}

	body := w.Body.String()
	for _, want := range []string{
		"Page 2 of 3",
		"Total matches: 40.",
		`id="fh-16"`,
		`id="fh-30"`,
		`rel="prev" href="/?name=Home"`,
		`rel="next" href="/?name=Home&amp;page=3"`,
		"Filters active",
		"Showing 15 results on this page.",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Home page does not contain %q", want)
		}
	}
	if strings.Contains(body, `id="fh-15"`) {
		t.Error("Home page shows a record from the previous page")
	}
}

func TestWebHomeEmpty(t *testing.T) {
	up := newUpstream(t, 40)
	s := setupTestWebServer(t, up.URL)

	body := get(t, s.Handler(), "/?city=Nowhere").Body.String()
	if !strings.Contains(body, "No results found.") {
		t.Error("Expected the empty state")
	}
	if !strings.Contains(body, "Page 1 of 1") {
		t.Error("Expected a single page")
	}
}

func TestWebHomeClampsPage(t *testing.T) {
	up := newUpstream(t, 20)
	s := setupTestWebServer(t, up.URL)

	body := get(t, s.Handler(), "/?page=50").Body.String()
	if !strings.Contains(body, "Page 2 of 2") {
		t.Error("Expected the page to be clamped to the last page")
	}
	if !strings.Contains(body, `id="fh-20"`) {
		t.Error("Expected the last page records")
	}
}

func TestWebHomeWithoutBaseURL(t *testing.T) {
	s := setupTestWebServer(t, "")

	w := get(t, s.Handler(), "/")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), funeralhomes.ErrBaseURLNotSet.Error()) {
		t.Error("Expected the missing base URL error banner")
	}
}

func TestWebRoutes(t *testing.T) {
	up := newUpstream(t, 3)
	s := setupTestWebServer(t, up.URL)
	h := s.Handler()

	testCases := []struct {
		path   string
		status int
	}{
		{"/", http.StatusOK},
		{"/health", http.StatusOK},
		{"/api/search?name=Home", http.StatusOK},
		{"/nonexistent", http.StatusNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			w := get(t, h, tc.path)
			if w.Code != tc.status {
				t.Errorf("Expected status %d for %s, got %d", tc.status, tc.path, w.Code)
			}
			if w.Header().Get("X-Request-ID") == "" {
				t.Errorf("Expected a request id for %s", tc.path)
			}
			if w.Header().Get("Access-Control-Allow-Origin") != "*" {
				t.Errorf("Expected CORS headers for %s", tc.path)
			}
		})
	}
}

func TestWebGzip(t *testing.T) {
	up := newUpstream(t, 15)
	s := setupTestWebServer(t, up.URL)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("Expected gzip encoding, got headers %v", w.Header())
	}
	zr, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatalf("Failed to open gzip body: %v", err)
	}
	body, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("Failed to read gzip body: %v", err)
	}
	if !strings.Contains(string(body), "Funeral Homes Search") {
		t.Error("Decompressed page is missing the title")
	}
}

func TestWebReloadSwapsClient(t *testing.T) {
	t.Setenv(config.EnvAPIBaseURL, "")
	s := setupTestWebServer(t, "http://old.example")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_base_url = "http://new.example/"`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := s.reload(path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := s.client.Load().BaseURL(); got != "http://new.example" {
		t.Errorf("BaseURL after reload = %q", got)
	}

	if err := os.WriteFile(path, []byte(`api_base_url = `), 0644); err != nil {
		t.Fatal(err)
	}
	if err := s.reload(path); err == nil {
		t.Error("Expected an error for a broken config")
	}
	if got := s.client.Load().BaseURL(); got != "http://new.example" {
		t.Errorf("Broken config replaced the client, BaseURL = %q", got)
	}
}

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	t.Setenv(config.EnvAPIBaseURL, "")
	s := setupTestWebServer(t, "http://old.example")

	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.GetDefaultConfig()
	cfg.APIBaseURL = "http://old.example"
	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.watchConfig(ctx, path)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	// Give the watcher time to register the file
	time.Sleep(100 * time.Millisecond)

	cfg.APIBaseURL = "http://new.example"
	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if s.client.Load().BaseURL() == "http://new.example" {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("Client not reloaded, BaseURL = %q", s.client.Load().BaseURL())
}
