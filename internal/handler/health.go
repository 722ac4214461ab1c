package handler

import (
	"encoding/json"
	"net/http"
	"time"
)

type healthResponse struct {
	Status    string `json:"status"`
	StartedAt string `json:"started_at"`
}

// Health is the liveness probe. It never touches an upstream.
func Health(startedAt time.Time) http.HandlerFunc {
	body, _ := json.Marshal(healthResponse{Status: "ok", StartedAt: startedAt.UTC().Format(time.RFC3339)})
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}
