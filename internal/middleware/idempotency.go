package middleware

import (
	"bytes"
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"
)

// IdempotencyConfig tunes IdempotencyStore. A zero TTL keeps responses for a
// day; a zero Cleanup sweeps hourly.
type IdempotencyConfig struct {
	TTL     time.Duration
	Cleanup time.Duration
}

// IdempotencyStore remembers responses to mutating requests that carried an
// Idempotency-Key header, so a retried request replays the first response
// instead of mutating the catalog twice.
type IdempotencyStore struct {
	*janitor

	mu      sync.Mutex
	entries map[string]*recorded
	ttl     time.Duration
	now     func() time.Time
}

// recorded is one remembered response. done closes once the first request
// has finished writing it.
type recorded struct {
	status    int
	headers   http.Header
	body      []byte
	expiresAt time.Time
	done      chan struct{}
}

func (e *recorded) pending() bool {
	select {
	case <-e.done:
		return false
	default:
		return true
	}
}

func NewIdempotencyStore(cfg IdempotencyConfig) *IdempotencyStore {
	s := &IdempotencyStore{
		entries: make(map[string]*recorded),
		ttl:     cmp.Or(cfg.TTL, 24*time.Hour),
		now:     time.Now,
	}
	s.janitor = startJanitor(cmp.Or(cfg.Cleanup, time.Hour), s.cleanup)
	return s
}

func (s *IdempotencyStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for fp, e := range s.entries {
		if !e.pending() && e.expiresAt.Before(now) {
			delete(s.entries, fp)
		}
	}
}

// claim returns the entry for fp. first is true when the caller must run the
// request and record it; otherwise it waits on done and replays.
func (s *IdempotencyStore) claim(fp string) (e *recorded, first bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev := s.entries[fp]; prev != nil && (prev.pending() || s.now().Before(prev.expiresAt)) {
		return prev, false
	}

	e = &recorded{done: make(chan struct{})}
	s.entries[fp] = e
	return e, true
}

func (s *IdempotencyStore) record(e *recorded, tee *teeWriter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.status = tee.status
	e.headers = tee.Header().Clone()
	e.body = tee.buf.Bytes()
	e.expiresAt = s.now().Add(s.ttl)
	close(e.done)
}

// fingerprint ties a key to the caller, the route and the exact body, so the
// same key on a different request is not a replay.
func fingerprint(client, key, method, path string, body []byte) string {
	sum := sha256.New()
	for _, field := range [...]string{client, key, method, path} {
		sum.Write([]byte(field))
		sum.Write([]byte{0})
	}
	sum.Write(body)
	return hex.EncodeToString(sum.Sum(nil))
}

// teeWriter forwards the response to the client and keeps a copy.
type teeWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (t *teeWriter) WriteHeader(status int) {
	t.status = status
	t.ResponseWriter.WriteHeader(status)
}

func (t *teeWriter) Write(p []byte) (int, error) {
	t.buf.Write(p)
	return t.ResponseWriter.Write(p)
}

func (e *recorded) replay(w http.ResponseWriter) {
	h := w.Header()
	for name, values := range e.headers {
		h[name] = append(h[name], values...)
	}
	h.Set("X-Idempotency-Replayed", "true")
	w.WriteHeader(e.status)
	_, _ = w.Write(e.body)
}

func mutating(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodDelete
}

// Idempotency replays the recorded response when a POST, PUT or DELETE
// repeats an Idempotency-Key with the same body. A repeat that arrives while
// the first is still running waits for it.
func Idempotency(store *IdempotencyStore) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("Idempotency-Key")
			if key == "" || !mutating(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			e, first := store.claim(fingerprint(clientKey(r), key, r.Method, r.URL.Path, body))
			if !first {
				select {
				case <-e.done:
					e.replay(w)
				case <-r.Context().Done():
				}
				return
			}

			tee := &teeWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(tee, r)
			store.record(e, tee)
		})
	}
}
