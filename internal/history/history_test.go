package history

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/fstvl/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestRecordAndGetByID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	run := Run{
		ID:          "run-1",
		Section:     "artists",
		ContentType: "artist",
		Trigger:     TriggerHTTP,
		Status:      StatusFallback,
		Items:       0,
		Error:       "HTTP error: 401",
		Duration:    250 * time.Millisecond,
	}
	if err := store.Record(ctx, run); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := store.GetByID(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Section != "artists" {
		t.Errorf("Section = %q, want %q", got.Section, "artists")
	}
	if got.Trigger != TriggerHTTP {
		t.Errorf("Trigger = %q, want %q", got.Trigger, TriggerHTTP)
	}
	if got.Status != StatusFallback {
		t.Errorf("Status = %q, want %q", got.Status, StatusFallback)
	}
	if got.Error != "HTTP error: 401" {
		t.Errorf("Error = %q", got.Error)
	}
	if got.Duration != 250*time.Millisecond {
		t.Errorf("Duration = %v, want 250ms", got.Duration)
	}
	if got.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestRecordGeneratesUUIDAndTrigger(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if err := store.Record(ctx, Run{Section: "stages", ContentType: "stage", Status: StatusOK, Items: 4}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	runs, err := store.Query(ctx, QueryFilter{Section: "stages"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].ID == "" {
		t.Error("expected generated ID, got empty string")
	}
	if runs[0].Trigger != TriggerCLI {
		t.Errorf("Trigger = %q, want default %q", runs[0].Trigger, TriggerCLI)
	}
	if runs[0].Items != 4 {
		t.Errorf("Items = %d, want 4", runs[0].Items)
	}
}

func TestQueryFilters(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	seed := []Run{
		{Section: "artists", ContentType: "artist", Status: StatusOK, Trigger: TriggerCLI},
		{Section: "artists", ContentType: "artist", Status: StatusFallback, Trigger: TriggerHTTP},
		{Section: "stages", ContentType: "stage", Status: StatusOK, Trigger: TriggerHTTP},
	}
	for _, r := range seed {
		if err := store.Record(ctx, r); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter QueryFilter
		want   int
	}{
		{"all", QueryFilter{}, 3},
		{"section", QueryFilter{Section: "artists"}, 2},
		{"status", QueryFilter{Status: StatusOK}, 2},
		{"trigger", QueryFilter{Trigger: TriggerHTTP}, 2},
		{"combined", QueryFilter{Section: "artists", Status: StatusFallback}, 1},
		{"limit", QueryFilter{Limit: 2}, 2},
		{"offset", QueryFilter{Limit: 2, Offset: 2}, 1},
		{"offset only", QueryFilter{Offset: 1}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := store.Query(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if len(runs) != tt.want {
				t.Errorf("got %d runs, want %d", len(runs), tt.want)
			}
		})
	}
}

func TestQueryNewestFirst(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	for _, id := range []string{"first", "second", "third"} {
		if err := store.Record(ctx, Run{ID: id, Section: "artists", ContentType: "artist", Status: StatusOK}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	runs, err := store.Query(ctx, QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(runs) != 3 || runs[0].ID != "third" || runs[2].ID != "first" {
		t.Errorf("unexpected order: %+v", runs)
	}
}

func TestDeleteBefore(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.Record(ctx, Run{Section: "stages", ContentType: "stage", Status: StatusOK}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	// Nothing is older than an hour ago.
	deleted, err := store.DeleteBefore(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected 0 deleted, got %d", deleted)
	}

	deleted, err = store.DeleteBefore(ctx, time.Now().Add(24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if deleted != 3 {
		t.Errorf("expected 3 deleted, got %d", deleted)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	store := setupStore(t)
	if _, err := store.GetByID(context.Background(), "nonexistent"); err == nil {
		t.Error("expected error for nonexistent ID, got nil")
	}
}

// --- HTTP handler tests ---

func setupRouter(t *testing.T) (chi.Router, *Store) {
	t.Helper()
	store := setupStore(t)
	r := chi.NewRouter()
	RegisterRoutes(r, store)
	return r, store
}

func TestHTTPGetByID(t *testing.T) {
	r, store := setupRouter(t)
	if err := store.Record(context.Background(), Run{ID: "http-1", Section: "schedule-friday", ContentType: "artist", Status: StatusOK, Items: 9}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/runs/http-1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var got Run
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != "http-1" || got.Items != 9 {
		t.Errorf("got %+v", got)
	}
}

func TestHTTPGetByIDNotFound(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/runs/missing", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHTTPQueryWithFilter(t *testing.T) {
	r, store := setupRouter(t)
	ctx := context.Background()
	for _, status := range []Status{StatusOK, StatusFallback, StatusOK} {
		if err := store.Record(ctx, Run{Section: "artists", ContentType: "artist", Status: status}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/runs?status=ok&limit=10", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var runs []Run
	if err := json.NewDecoder(rec.Body).Decode(&runs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 ok runs, got %d", len(runs))
	}
}

func TestHTTPQueryEmptyIsArray(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("body = %q, want empty JSON array", body)
	}
}
