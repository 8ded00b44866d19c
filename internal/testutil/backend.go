// Package testutil provides an in-memory stand-in for the HRMS REST backend.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

type Call struct {
	Method string
	Path   string
}

type failure struct {
	status int
	body   string
}

// Backend serves list/get/create/update/delete for each named resource and
// assigns integer ids in creation order. Updates merge non-null fields.
type Backend struct {
	Server *httptest.Server

	mu       sync.Mutex
	nextID   map[string]int64
	items    map[string][]map[string]any
	failures map[string]failure
	calls    []Call
}

func NewBackend(t testing.TB, resources ...string) *Backend {
	t.Helper()
	if len(resources) == 0 {
		resources = []string{"employees", "attendance", "payroll"}
	}
	b := &Backend{
		nextID:   map[string]int64{},
		items:    map[string][]map[string]any{},
		failures: map[string]failure{},
	}
	router := chi.NewRouter()
	router.Use(b.record)
	for _, resource := range resources {
		res := resource
		b.items[res] = []map[string]any{}
		router.Route("/"+res, func(r chi.Router) {
			r.Use(b.failuresFor(res))
			r.Get("/", b.handleList(res))
			r.Post("/", b.handleCreate(res))
			r.Get("/{id}", b.handleGet(res))
			r.Put("/{id}", b.handleUpdate(res))
			r.Delete("/{id}", b.handleDelete(res))
		})
	}
	b.Server = httptest.NewServer(router)
	t.Cleanup(b.Server.Close)
	return b
}

func (b *Backend) URL() string {
	return b.Server.URL
}

// Seed stores items as if they had been created, keeping explicit ids.
func (b *Backend) Seed(resource string, items ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, item := range items {
		m := toMap(item)
		id := idOf(m)
		if id <= 0 {
			b.nextID[resource]++
			id = b.nextID[resource]
		} else if id > b.nextID[resource] {
			b.nextID[resource] = id
		}
		m["id"] = float64(id)
		b.items[resource] = append(b.items[resource], m)
	}
}

func (b *Backend) Count(resource string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items[resource])
}

// Decode copies the stored items of resource into out (a pointer to a slice).
func (b *Backend) Decode(resource string, out any) error {
	b.mu.Lock()
	raw, err := json.Marshal(b.items[resource])
	b.mu.Unlock()
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// FailWith makes every request to resource answer status with body. A zero
// status clears the failure.
func (b *Backend) FailWith(resource string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if status == 0 {
		delete(b.failures, resource)
		return
	}
	b.failures[resource] = failure{status: status, body: body}
}

func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Call, len(b.calls))
	copy(out, b.calls)
	return out
}

// CountCalls counts recorded calls with the given method.
func (b *Backend) CountCalls(method string) int {
	n := 0
	for _, call := range b.Calls() {
		if call.Method == method {
			n++
		}
	}
	return n
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls = append(b.calls, Call{Method: r.Method, Path: r.URL.Path})
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) failuresFor(resource string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b.mu.Lock()
			f, ok := b.failures[resource]
			b.mu.Unlock()
			if ok {
				w.WriteHeader(f.status)
				_, _ = w.Write([]byte(f.body))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (b *Backend) handleList(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		items := make([]map[string]any, len(b.items[resource]))
		copy(items, b.items[resource])
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, items)
	}
}

func (b *Backend) handleGet(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		idx := b.indexOf(resource, id)
		if idx < 0 {
			notFound(w, resource, id)
			return
		}
		writeJSON(w, http.StatusOK, b.items[resource][idx])
	}
}

func (b *Backend) handleCreate(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
			return
		}
		b.mu.Lock()
		b.nextID[resource]++
		body["id"] = float64(b.nextID[resource])
		b.items[resource] = append(b.items[resource], body)
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, body)
	}
}

func (b *Backend) handleUpdate(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		idx := b.indexOf(resource, id)
		if idx < 0 {
			notFound(w, resource, id)
			return
		}
		current := b.items[resource][idx]
		merged := make(map[string]any, len(current))
		for k, v := range current {
			merged[k] = v
		}
		for k, v := range body {
			if v != nil && k != "id" {
				merged[k] = v
			}
		}
		b.items[resource][idx] = merged
		writeJSON(w, http.StatusOK, merged)
	}
}

func (b *Backend) handleDelete(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		idx := b.indexOf(resource, id)
		if idx < 0 {
			notFound(w, resource, id)
			return
		}
		b.items[resource] = append(b.items[resource][:idx:idx], b.items[resource][idx+1:]...)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (b *Backend) indexOf(resource string, id int64) int {
	for i, item := range b.items[resource] {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("invalid id"))
		return 0, false
	}
	return id, true
}

func notFound(w http.ResponseWriter, resource string, id int64) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusNotFound)
	_, _ = fmt.Fprintf(w, "%s record with id %d not found", resource, id)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func toMap(item any) map[string]any {
	raw, err := json.Marshal(item)
	if err != nil {
		panic(err)
	}
	m := map[string]any{}
	if err := json.Unmarshal(raw, &m); err != nil {
		panic(err)
	}
	return m
}

func idOf(m map[string]any) int64 {
	switch v := m["id"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

// Resources lists the served resource names, sorted.
func (b *Backend) Resources() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.items))
	for name := range b.items {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
