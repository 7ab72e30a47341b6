package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ziadkadry99/fstvl/internal/contentful"
	"github.com/ziadkadry99/fstvl/internal/db"
	"github.com/ziadkadry99/fstvl/internal/history"
	"github.com/ziadkadry99/fstvl/internal/render"
	"github.com/ziadkadry99/fstvl/internal/site"
)

const artistsJSON = `{
  "items": [
    {"sys": {"id": "a1"}, "fields": {"name": "Drake <b>", "genre": {"sys": {"id": "g1"}}}},
    {"sys": {"id": "a2"}, "fields": {"name": "Slipknot"}}
  ],
  "includes": {"Entry": [{"sys": {"id": "g1"}, "fields": {"name": "Hip Hop"}}]}
}`

const stagesJSON = `{
  "items": [
    {"sys": {"id": "s2"}, "fields": {"name": "Sunset Arena", "area": "West"}},
    {"sys": {"id": "s1"}, "fields": {"name": "Echo Stage", "area": "North"}}
  ]
}`

// newContentAPI serves canned entries per content type. A failing content
// type answers 500.
func newContentAPI(t *testing.T, failing string) *httptest.Server {
	t.Helper()
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ct := r.URL.Query().Get("content_type")
		if ct == failing {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch ct {
		case "artist":
			w.Write([]byte(artistsJSON))
		case "stage":
			w.Write([]byte(stagesJSON))
		default:
			w.Write([]byte(`{"items": []}`))
		}
	}))
	t.Cleanup(api.Close)
	return api
}

func newTestServer(t *testing.T, cfg Config, failing string, runs *history.Store) *Server {
	t.Helper()
	api := newContentAPI(t, failing)
	client := contentful.NewClient(contentful.Options{
		BaseURL:     api.URL,
		SpaceID:     "space",
		AccessToken: "token",
		Include:     2,
	})
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	opts := site.Options{
		Title:            "FSTVL",
		StageOrder:       []string{"Echo Stage", "Sunset Arena", "Skyline Stage", "Bassline Tent"},
		DayLabels:        [2]string{"Friday", "Saturday"},
		MaxArtistsPerDay: 5,
		DistributeDays:   true,
		Trigger:          history.TriggerHTTP,
	}
	if runs != nil {
		opts.Recorder = runs
	}
	gen, err := site.NewSiteGenerator(client, renderer, opts)
	if err != nil {
		t.Fatalf("NewSiteGenerator: %v", err)
	}
	return New(cfg, gen, renderer, runs, nil)
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, Config{Port: 0}, "", nil)

	w := get(t, srv, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, Config{Port: 0, AllowAll: true}, "", nil)

	req := httptest.NewRequest("OPTIONS", "/fragments/artists", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestPage(t *testing.T) {
	srv := newTestServer(t, Config{}, "", nil)

	w := get(t, srv, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	body := w.Body.String()

	for _, want := range []string{
		`class="artist-list"`,
		`class="stage-list"`,
		`id="schedule-body-friday"`,
		`id="schedule-body-saturday"`,
		`id="hamburger-menu"`,
		`id="nav-menu" style="display: none"`,
		"Drake &lt;b&gt;",
		"<p>Genre: Hip Hop</p>",
		"<p>Stage: No stage available</p>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if !strings.Contains(body, `href="#stages"`) {
		t.Error("nav links on a closed menu should be in-page anchors")
	}
	if strings.Contains(body, `href="?#`) {
		t.Error("nav links on a closed menu should not reload the page")
	}
	if strings.Contains(body, "Drake <b>") {
		t.Error("artist name was not escaped")
	}
	if got := strings.Count(body, `class="artist-card"`); got != 2 {
		t.Errorf("artist cards = %d, want 2", got)
	}
	if strings.Index(body, "Echo Stage</h3>") > strings.Index(body, "Sunset Arena</h3>") {
		t.Error("stages out of order")
	}
}

func TestPageMenuOpen(t *testing.T) {
	srv := newTestServer(t, Config{}, "", nil)

	body := get(t, srv, "/?menu=open").Body.String()
	if !strings.Contains(body, `id="nav-menu" style="display: flex"`) {
		t.Error("expected open menu")
	}
	if !strings.Contains(body, `aria-expanded="true"`) {
		t.Error("expected aria-expanded true")
	}
}

func TestPageFallbacks(t *testing.T) {
	srv := newTestServer(t, Config{}, "artist", nil)

	w := get(t, srv, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with fallbacks, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		string(render.ArtistsFallback),
		`<tr><td colspan="5">Could not load schedule or no schedule available. Please try again later.</td></tr>`,
		`<tr><td colspan="4">Could not load schedule or no schedule available. Please try again later.</td></tr>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing fallback %q", want)
		}
	}
	if strings.Contains(body, string(render.StagesFallback)) {
		t.Error("stages should still render")
	}
}

func TestFragment(t *testing.T) {
	srv := newTestServer(t, Config{}, "", nil)

	w := get(t, srv, "/fragments/stages")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("X-Fstvl-Container"); got != ".stage-list" {
		t.Errorf("container header = %q", got)
	}
	if got := strings.Count(w.Body.String(), `class="stage-card"`); got != 2 {
		t.Errorf("stage cards = %d, want 2", got)
	}
	if strings.Contains(w.Body.String(), "<html") {
		t.Error("fragment should not contain the page")
	}

	w = get(t, srv, "/fragments/schedule-saturday")
	if got := strings.Count(w.Body.String(), "<tr>"); got != 11 {
		t.Errorf("saturday rows = %d, want 11", got)
	}
}

func TestFragmentUnknownSection(t *testing.T) {
	srv := newTestServer(t, Config{}, "", nil)

	if w := get(t, srv, "/fragments/lineup"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestAssets(t *testing.T) {
	srv := newTestServer(t, Config{}, "", nil)

	tests := []struct {
		path string
		ct   string
	}{
		{"/style.css", "text/css"},
		{"/script.js", "text/javascript"},
	}
	for _, tt := range tests {
		w := get(t, srv, tt.path)
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", tt.path, w.Code)
		}
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, tt.ct) {
			t.Errorf("%s: content type = %q", tt.path, ct)
		}
		if w.Body.Len() == 0 {
			t.Errorf("%s: empty body", tt.path)
		}
	}
}

func TestHistoryRoutes(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()
	runs := history.NewStore(database)

	srv := newTestServer(t, Config{}, "stage", runs)

	if w := get(t, srv, "/fragments/stages"); w.Code != http.StatusOK {
		t.Fatalf("fragment: expected 200, got %d", w.Code)
	}

	recorded, err := runs.Query(context.Background(), history.QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(recorded) != 1 {
		t.Fatalf("recorded runs = %d, want 1", len(recorded))
	}
	if recorded[0].Trigger != history.TriggerHTTP || recorded[0].Status != history.StatusFallback {
		t.Errorf("run = %+v", recorded[0])
	}

	w := get(t, srv, "/api/runs?section=stages")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var listed []history.Run
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != recorded[0].ID {
		t.Errorf("listed = %+v", listed)
	}

	if w := get(t, srv, "/api/runs/"+recorded[0].ID); w.Code != http.StatusOK {
		t.Errorf("get by id: expected 200, got %d", w.Code)
	}
}

func TestHistoryRoutesAbsentWithoutStore(t *testing.T) {
	srv := newTestServer(t, Config{}, "", nil)

	if w := get(t, srv, "/api/runs"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
