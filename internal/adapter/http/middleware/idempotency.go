package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/iho/financo/internal/usecase"
)

const (
	// IdempotencyKeyHeader names the client-supplied retry key.
	IdempotencyKeyHeader = "Idempotency-Key"

	idempotencyTTL = 24 * time.Hour
)

// storedOutcome is the envelope kept in the idempotency store. A zero
// Status means the first request with this key is still in flight.
type storedOutcome struct {
	Status int    `json:"status"`
	Hash   string `json:"hash"`
	Body   []byte `json:"body,omitempty"`
}

// IdempotencyMiddleware makes POST and PUT requests safe to retry:
// a repeated Idempotency-Key replays the stored response instead of
// recording the salary, transfer or expense a second time. Keys are
// scoped by method and path, and reusing a key with a different body
// is rejected.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
}

func NewIdempotencyMiddleware(store usecase.IdempotencyStore) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{store: store}
}

func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" || !isMutating(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		sum := sha256.Sum256(body)
		hash := hex.EncodeToString(sum[:])
		cacheKey := r.Method + ":" + r.URL.Path + ":" + key

		claim, err := json.Marshal(storedOutcome{Hash: hash})
		if err != nil {
			http.Error(w, "idempotency check failed", http.StatusInternalServerError)
			return
		}

		seen, cached, err := m.store.CheckAndSet(r.Context(), cacheKey, claim, idempotencyTTL)
		if err != nil {
			http.Error(w, "idempotency check failed", http.StatusInternalServerError)
			return
		}

		if seen {
			var prev storedOutcome
			if err := json.Unmarshal(cached, &prev); err != nil {
				http.Error(w, "idempotency check failed", http.StatusInternalServerError)
				return
			}

			if prev.Hash != hash {
				http.Error(w, "idempotency key reused with a different request body", http.StatusUnprocessableEntity)
				return
			}

			// The first request holding this key has not finished yet.
			if prev.Status == 0 {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "request with this idempotency key is still in progress", http.StatusConflict)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Idempotency-Replay", "true")
			w.WriteHeader(prev.Status)
			w.Write(prev.Body)
			return
		}

		rec := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(rec, r)

		// Only successful outcomes are worth replaying; a failed write
		// releases the claim so the client can retry for real.
		if rec.statusCode >= 200 && rec.statusCode < 300 {
			outcome, err := json.Marshal(storedOutcome{
				Status: rec.statusCode,
				Hash:   hash,
				Body:   rec.body.Bytes(),
			})
			if err == nil {
				m.store.Update(r.Context(), cacheKey, outcome, idempotencyTTL)
			}
		} else {
			m.store.Delete(r.Context(), cacheKey)
		}
	})
}

func isMutating(method string) bool {
	return method == http.MethodPost || method == http.MethodPut
}

type responseRecorder struct {
	http.ResponseWriter

	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(p []byte) (int, error) {
	r.body.Write(p)
	return r.ResponseWriter.Write(p)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
