package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const readinessTimeout = 5 * time.Second

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	pool        *pgxpool.Pool
	redisClient *redis.Client
}

func NewHealthHandler(pool *pgxpool.Pool, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{pool: pool, redisClient: redisClient}
}

// Liveness answers as long as the process can serve HTTP at all.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness additionally requires both backing stores to answer a
// ping, so a pod with a dead database drops out of rotation.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	checks := []struct {
		name string
		ping func(context.Context) error
	}{
		{"postgres", h.pool.Ping},
		{"redis", func(ctx context.Context) error { return h.redisClient.Ping(ctx).Err() }},
	}

	status := map[string]string{"status": "ready"}
	for _, check := range checks {
		if err := check.ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, check.name+" unhealthy", err.Error())
			return
		}
		status[check.name] = "ok"
	}

	writeJSON(w, http.StatusOK, status)
}
