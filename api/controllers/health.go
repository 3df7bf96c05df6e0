package controllers

import (
	"net/http"

	"github.com/minliz/udacimarket-backend/api/responses"
	"github.com/minliz/udacimarket-backend/pkg/config"
	"github.com/minliz/udacimarket-backend/pkg/db"
	"github.com/minliz/udacimarket-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Udacimarket-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the backing stores a request actually needs.
func HealthReady(cfg *config.Config, dbP db.Pinger, redisClient redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Udacimarket-Env", cfg.App.Env)

		checks := map[string]string{"database": "ok", "redis": "ok"}
		status := http.StatusOK

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				checks["database"] = "unreachable"
				status = http.StatusServiceUnavailable
			}
		}
		if redisClient != nil {
			if err := redisClient.Ping(r.Context()); err != nil {
				checks["redis"] = "unreachable"
				status = http.StatusServiceUnavailable
			}
		}

		responses.WriteSuccessStatus(w, status, checks)
	}
}
