package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"hrmsconsole/internal/transport/http/api"
)

const IdempotencyHeader = "Idempotency-Key"

// IdempotencyStore remembers the response of a keyed create so a retried POST
// replays it instead of creating a second record. A key is reserved while its
// first request runs.
type IdempotencyStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]idempotentResponse
	now     func() time.Time
}

type idempotentResponse struct {
	requestHash string
	pending     bool
	status      int
	contentType string
	body        []byte
	expires     time.Time
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{ttl: ttl, entries: map[string]idempotentResponse{}, now: time.Now}
}

func RequestHash(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Idempotent replays stored 2xx responses for a repeated Idempotency-Key on
// the same path. A reused key with a different body is a conflict, and so is
// a repeat that arrives while the first request is still running. Requests
// without the header pass through.
func Idempotent(store *IdempotencyStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyHeader)
			if key == "" || r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}
			payload, err := io.ReadAll(r.Body)
			if err != nil {
				api.Fail(w, http.StatusBadRequest, api.CodeInvalidPayload, "invalid request payload", GetRequestID(r.Context()))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(payload))
			hash := RequestHash(payload)
			entryKey := r.URL.Path + "\x00" + key

			stored, reserved := store.reserve(entryKey, hash)
			if !reserved {
				switch {
				case stored.requestHash != hash:
					api.Fail(w, http.StatusConflict, "idempotency_conflict", "idempotency key conflicts with existing request", GetRequestID(r.Context()))
				case stored.pending:
					api.Fail(w, http.StatusConflict, "idempotency_in_progress", "a request with this idempotency key is still in progress", GetRequestID(r.Context()))
				default:
					w.Header().Set("Content-Type", stored.contentType)
					w.Header().Set("Idempotent-Replayed", "true")
					w.WriteHeader(stored.status)
					_, _ = w.Write(stored.body)
				}
				return
			}

			saved := false
			defer func() {
				if !saved {
					store.release(entryKey)
				}
			}()
			capture := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(capture, r)
			if capture.status >= 200 && capture.status < 300 {
				store.save(entryKey, idempotentResponse{
					requestHash: hash,
					status:      capture.status,
					contentType: w.Header().Get("Content-Type"),
					body:        capture.body.Bytes(),
				})
				saved = true
			}
		})
	}
}

// reserve returns the live entry for key, or marks key pending and reports
// true when there is none.
func (s *IdempotencyStore) reserve(key, hash string) (idempotentResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if entry, ok := s.entries[key]; ok && !now.After(entry.expires) {
		return entry, false
	}
	s.entries[key] = idempotentResponse{requestHash: hash, pending: true, expires: now.Add(s.ttl)}
	return idempotentResponse{}, true
}

func (s *IdempotencyStore) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[key]; ok && entry.pending {
		delete(s.entries, key)
	}
}

func (s *IdempotencyStore) save(key string, entry idempotentResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, k)
		}
	}
	entry.expires = now.Add(s.ttl)
	s.entries[key] = entry
}

type captureWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (c *captureWriter) WriteHeader(code int) {
	c.status = code
	c.ResponseWriter.WriteHeader(code)
}

func (c *captureWriter) Write(p []byte) (int, error) {
	c.body.Write(p)
	return c.ResponseWriter.Write(p)
}
