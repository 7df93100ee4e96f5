package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type stubIdempotencyStore struct {
	checkFn  func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	updateFn func(ctx context.Context, key string, response []byte, ttl time.Duration) error
	deleteFn func(ctx context.Context, key string) error
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if s.checkFn != nil {
		return s.checkFn(ctx, key, response, ttl)
	}
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, key, response, ttl)
	}
	return nil
}

func (s *stubIdempotencyStore) Delete(ctx context.Context, key string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, key)
	}
	return nil
}

func bodyHash(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}

func mustOutcome(t *testing.T, status int, reqBody string, respBody []byte) []byte {
	t.Helper()
	raw, err := json.Marshal(storedOutcome{Status: status, Hash: bodyHash(reqBody), Body: respBody})
	if err != nil {
		t.Fatalf("marshal outcome: %v", err)
	}
	return raw
}

func doIdempotentRequestBody(store *stubIdempotencyStore, method, path, key, body string, next http.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}

	rr := httptest.NewRecorder()
	NewIdempotencyMiddleware(store).Wrap(next).ServeHTTP(rr, req)
	return rr
}

func doIdempotentRequest(store *stubIdempotencyStore, method, key string, next http.HandlerFunc) *httptest.ResponseRecorder {
	return doIdempotentRequestBody(store, method, "/api/v1/salaries", key, `{}`, next)
}

func TestIdempotencySkipsReadsAndKeylessRequests(t *testing.T) {
	store := &stubIdempotencyStore{
		checkFn: func(context.Context, string, []byte, time.Duration) (bool, []byte, error) {
			t.Fatal("store must not be consulted")
			return false, nil, nil
		},
	}

	for _, tc := range []struct {
		method string
		key    string
	}{
		{http.MethodGet, "some-key"},
		{http.MethodDelete, "some-key"},
		{http.MethodPost, ""},
	} {
		called := false
		rr := doIdempotentRequest(store, tc.method, tc.key, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		if !called {
			t.Fatalf("%s with key %q: handler skipped", tc.method, tc.key)
		}
		if rr.Header().Get("X-Idempotency-Replay") != "" {
			t.Fatalf("%s with key %q: unexpected replay header", tc.method, tc.key)
		}
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := &stubIdempotencyStore{
		checkFn: func(_ context.Context, _ string, _ []byte, _ time.Duration) (bool, []byte, error) {
			return true, mustOutcome(t, http.StatusCreated, `{}`, []byte(`{"id":"rec-1"}`)), nil
		},
	}

	rr := doIdempotentRequest(store, http.MethodPost, "retry-1", func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run on replay")
	})

	if rr.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatal("expected replay header")
	}
	if rr.Code != http.StatusCreated {
		t.Fatalf("replay must keep the original status, got %d", rr.Code)
	}
	if rr.Body.String() != `{"id":"rec-1"}` {
		t.Fatalf("unexpected replayed body: %s", rr.Body.String())
	}
}

func TestIdempotencyRejectsInFlightDuplicate(t *testing.T) {
	// The stored value is a claim with no status yet: the first
	// request with this key has not finished.
	store := &stubIdempotencyStore{
		checkFn: func(_ context.Context, _ string, _ []byte, _ time.Duration) (bool, []byte, error) {
			return true, mustOutcome(t, 0, `{}`, nil), nil
		},
	}

	calls := 0
	rr := doIdempotentRequest(store, http.MethodPost, "dup-1", func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	if calls != 0 {
		t.Fatalf("handler ran %d times for an in-flight duplicate", calls)
	}
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Fatal("expected a Retry-After hint")
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	store := &stubIdempotencyStore{
		checkFn: func(_ context.Context, _ string, _ []byte, _ time.Duration) (bool, []byte, error) {
			return true, mustOutcome(t, http.StatusCreated, `{"amount":"100"}`, []byte(`{"id":"rec-1"}`)), nil
		},
	}

	rr := doIdempotentRequestBody(store, http.MethodPost, "/api/v1/salaries", "reuse-1", `{"amount":"999"}`, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a reused key with a new body")
	})

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
}

func TestIdempotencyScopesKeyByMethodAndPath(t *testing.T) {
	var seenKeys []string
	store := &stubIdempotencyStore{
		checkFn: func(_ context.Context, key string, _ []byte, _ time.Duration) (bool, []byte, error) {
			seenKeys = append(seenKeys, key)
			return false, nil, nil
		},
	}

	handler := func(w http.ResponseWriter, r *http.Request) {}
	doIdempotentRequestBody(store, http.MethodPost, "/api/v1/salaries", "shared-key", `{}`, handler)
	doIdempotentRequestBody(store, http.MethodPost, "/api/v1/expenses", "shared-key", `{}`, handler)

	if len(seenKeys) != 2 {
		t.Fatalf("expected 2 store checks, got %d", len(seenKeys))
	}
	if seenKeys[0] == seenKeys[1] {
		t.Fatalf("same key on different paths must not collide: %q", seenKeys[0])
	}
	if seenKeys[0] != "POST:/api/v1/salaries:shared-key" {
		t.Fatalf("unexpected cache key: %q", seenKeys[0])
	}
}

func TestIdempotencyHandlerStillSeesRequestBody(t *testing.T) {
	store := &stubIdempotencyStore{}

	var got string
	doIdempotentRequestBody(store, http.MethodPost, "/api/v1/salaries", "body-1", `{"amount":"2500"}`, func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(r.Body); err != nil {
			t.Fatalf("read body: %v", err)
		}
		got = buf.String()
	})

	if got != `{"amount":"2500"}` {
		t.Fatalf("handler saw body %q", got)
	}
}

func TestIdempotencyStoresOnlySuccessfulResponses(t *testing.T) {
	var stored []byte
	var deleted string
	store := &stubIdempotencyStore{
		updateFn: func(_ context.Context, _ string, response []byte, _ time.Duration) error {
			stored = append([]byte(nil), response...)
			return nil
		},
		deleteFn: func(_ context.Context, key string) error {
			deleted = key
			return nil
		},
	}

	rr := doIdempotentRequest(store, http.MethodPost, "first-1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d", rr.Code)
	}

	var outcome storedOutcome
	if err := json.Unmarshal(stored, &outcome); err != nil {
		t.Fatalf("unmarshal stored outcome: %v", err)
	}
	if outcome.Status != http.StatusCreated {
		t.Fatalf("stored status %d, want 201", outcome.Status)
	}
	if string(outcome.Body) != `{"ok":true}` {
		t.Fatalf("stored body %q", outcome.Body)
	}
	if outcome.Hash != bodyHash(`{}`) {
		t.Fatalf("stored hash %q does not match the request body", outcome.Hash)
	}

	stored = nil
	doIdempotentRequest(store, http.MethodPost, "fail-1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})
	if stored != nil {
		t.Fatal("failed responses must not be stored")
	}
	if deleted != "POST:/api/v1/salaries:fail-1" {
		t.Fatalf("failed request must release its claim, deleted %q", deleted)
	}
}

func TestIdempotencyFailsClosedWhenStoreErrors(t *testing.T) {
	store := &stubIdempotencyStore{
		checkFn: func(context.Context, string, []byte, time.Duration) (bool, []byte, error) {
			return false, nil, context.DeadlineExceeded
		},
	}

	rr := doIdempotentRequest(store, http.MethodPost, "err-1", func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run when the store is down")
	})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}
