package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func TestDay(t *testing.T) {
	now := time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC)
	cases := map[string]string{
		"":                     "2024-05-01",
		"2024-04-30":           "2024-04-30",
		"2024-04-30T10:00:00Z": "2024-04-30",
	}
	for in, want := range cases {
		got, ok := Day(in, now)
		if !ok || got != want {
			t.Fatalf("%q: expected %s, got %s", in, want, got)
		}
	}
	if _, ok := Day("30/04/2024", now); ok {
		t.Fatal("expected invalid date rejected")
	}
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	req := httptest.NewRequest(http.MethodGet, "/?limit=2&offset=1", nil)
	if got := Page(items, ParsePagination(req, 100)); len(got) != 2 || got[0] != 2 {
		t.Fatalf("unexpected page %v", got)
	}
	if got := Page(items, Pagination{Offset: 9}); len(got) != 0 {
		t.Fatalf("expected empty page, got %v", got)
	}
	req = httptest.NewRequest(http.MethodGet, "/?limit=500", nil)
	if p := ParsePagination(req, 100); p.Limit != 100 {
		t.Fatalf("expected limit clamp, got %d", p.Limit)
	}
	if got := Page(items, Pagination{}); len(got) != 5 {
		t.Fatalf("expected all items, got %v", got)
	}
}

func TestDecodeJSONAndPathID(t *testing.T) {
	router := chi.NewRouter()
	router.Put("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := PathID(w, r, "id")
		if !ok {
			return
		}
		var body map[string]string
		if !DecodeJSON(w, r, &body) {
			return
		}
		if id != 7 || body["name"] != "Ada" {
			t.Errorf("unexpected id %d body %v", id, body)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	cases := []struct {
		path, body string
		want       int
	}{
		{"/items/7", `{"name":"Ada"}`, http.StatusNoContent},
		{"/items/abc", `{}`, http.StatusBadRequest},
		{"/items/7", `{`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, tc.path, strings.NewReader(tc.body)))
		if rec.Code != tc.want {
			t.Fatalf("%s %s: expected %d, got %d", tc.path, tc.body, tc.want, rec.Code)
		}
	}
}

func TestTextAcceptsNumbersAndStrings(t *testing.T) {
	var body struct {
		A Text `json:"a"`
		B Text `json:"b"`
		C Text `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":"5000","b":4950.5,"c":null}`), &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.A != "5000" || body.B != "4950.5" || body.C != "" {
		t.Fatalf("unexpected decode %+v", body)
	}
}
