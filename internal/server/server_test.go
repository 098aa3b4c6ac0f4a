package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gridboard/gridboard/pkg/grid"
	"github.com/gridboard/gridboard/pkg/registry"
	"github.com/gridboard/gridboard/pkg/store"
)

func newTestServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	reg, err := registry.New(
		registry.Panel{ID: "inventory", Title: "Inventory", X: 0, Y: 0, W: 4, H: 3},
		registry.Panel{ID: "news", Title: "News", X: 4, Y: 0, W: 4, H: 3},
	)
	if err != nil {
		t.Fatal(err)
	}
	st := store.NewMemoryStore()
	return New(reg, st, Config{}), st
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) grid.Snapshot {
	t.Helper()
	var snap grid.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
	return snap
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s.Router(), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestGetLayoutReturnsDefaultsWhenUnsaved(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s.Router(), http.MethodGet, "/api/tabs/main/layout", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	snap := decodeSnapshot(t, rec)
	if len(snap) != 2 {
		t.Fatalf("len(snapshot) = %d, want 2", len(snap))
	}
	byID := map[string]grid.Placement{}
	for _, p := range snap {
		byID[p.ID] = p
	}
	if inv := byID["inventory"]; inv.X != 0 || inv.W != 4 {
		t.Errorf("inventory = %+v, want registry default", inv)
	}
}

func TestPutAndGetLayout(t *testing.T) {
	s, _ := newTestServer(t)
	r := s.Router()

	put := grid.Snapshot{
		{ID: "inventory", X: 8, Y: 0, W: 4, H: 3},
		{ID: "news", X: 0, Y: 0, W: 4, H: 3},
	}
	rec := doJSON(t, r, http.MethodPut, "/api/tabs/main/layout", put)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d; body: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, http.MethodGet, "/api/tabs/main/layout", nil)
	snap := decodeSnapshot(t, rec)
	if !snap.Equal(decodeSnapshot(t, doJSON(t, r, http.MethodGet, "/api/tabs/main/layout", nil))) {
		t.Error("GET is not stable")
	}

	byID := map[string]grid.Placement{}
	for _, p := range snap {
		byID[p.ID] = p
	}
	if inv := byID["inventory"]; inv.X != 8 {
		t.Errorf("inventory.X = %d, want 8", inv.X)
	}
	if news := byID["news"]; news.X != 0 {
		t.Errorf("news.X = %d, want 0", news.X)
	}
}

func TestPutLayoutNormalizes(t *testing.T) {
	s, _ := newTestServer(t)

	put := grid.Snapshot{
		{ID: "inventory", X: 20, Y: 0, W: 40, H: 3}, // out of bounds: clamped
		{ID: "stranger", X: 0, Y: 0, W: 2, H: 2},    // unknown panel: dropped
	}
	rec := doJSON(t, s.Router(), http.MethodPut, "/api/tabs/main/layout", put)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d; body: %s", rec.Code, rec.Body.String())
	}

	snap := decodeSnapshot(t, rec)
	byID := map[string]grid.Placement{}
	for _, p := range snap {
		byID[p.ID] = p
	}
	if _, ok := byID["stranger"]; ok {
		t.Error("unknown panel survived normalization")
	}
	if inv := byID["inventory"]; inv.X+inv.W > 12 {
		t.Errorf("inventory out of bounds: %+v", inv)
	}
	if _, ok := byID["news"]; !ok {
		t.Error("panel missing from snapshot lost its registry default")
	}
}

func TestPutLayoutRejectsBadJSON(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPut, "/api/tabs/main/layout", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
}

func TestTabValidation(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s.Router(), http.MethodGet, "/api/tabs/%2e%2e/layout", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
}

func TestDeleteLayout(t *testing.T) {
	s, st := newTestServer(t)
	r := s.Router()

	put := grid.Snapshot{{ID: "inventory", X: 8, Y: 0, W: 4, H: 3}}
	doJSON(t, r, http.MethodPut, "/api/tabs/main/layout", put)

	rec := doJSON(t, r, http.MethodDelete, "/api/tabs/main/layout", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want 204", rec.Code)
	}

	tabs, _ := st.Tabs(context.Background())
	if len(tabs) != 0 {
		t.Errorf("tabs after delete = %v, want none", tabs)
	}
}

func TestCompactEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	r := s.Router()

	// Leave a vertical gap above inventory.
	put := grid.Snapshot{
		{ID: "inventory", X: 0, Y: 5, W: 4, H: 3},
		{ID: "news", X: 4, Y: 0, W: 4, H: 3},
	}
	doJSON(t, r, http.MethodPut, "/api/tabs/main/layout", put)

	rec := doJSON(t, r, http.MethodPost, "/api/tabs/main/compact", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST compact status = %d; body: %s", rec.Code, rec.Body.String())
	}

	snap := decodeSnapshot(t, rec)
	for _, p := range snap {
		if p.ID == "inventory" && p.Y != 0 {
			t.Errorf("inventory.Y = %d after compact, want 0", p.Y)
		}
	}
}

func TestListTabs(t *testing.T) {
	s, _ := newTestServer(t)
	r := s.Router()

	rec := doJSON(t, r, http.MethodGet, "/api/tabs", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("body = %q, want empty array", body)
	}

	doJSON(t, r, http.MethodPut, "/api/tabs/main/layout", grid.Snapshot{})

	rec = doJSON(t, r, http.MethodGet, "/api/tabs", nil)
	var tabs []string
	if err := json.Unmarshal(rec.Body.Bytes(), &tabs); err != nil {
		t.Fatal(err)
	}
	if len(tabs) != 1 || tabs[0] != "main" {
		t.Errorf("tabs = %v, want [main]", tabs)
	}
}

func TestListPanels(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s.Router(), http.MethodGet, "/api/panels", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var panels []registry.Panel
	if err := json.Unmarshal(rec.Body.Bytes(), &panels); err != nil {
		t.Fatal(err)
	}
	if len(panels) != 2 || panels[0].ID != "inventory" {
		t.Errorf("panels = %+v, want inventory and news", panels)
	}
}
