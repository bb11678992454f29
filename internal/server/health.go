package server

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"

	"github.com/osse101/Lootkeeper_Go/internal/database"
	"github.com/osse101/Lootkeeper_Go/internal/logger"
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// VersionInfo contains version and build information
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set(HeaderContentType, ContentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.FromContext(r.Context()).Warn(LogMsgEncodeFailed, "error", err)
	}
}

// HandleHealthz provides a basic liveness check
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, HealthResponse{Status: StatusOK})
	}
}

// HandleReadyz reports ready once the database answers a ping
func HandleReadyz(dbPool database.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if dbPool != nil {
			ctx, cancel := context.WithTimeout(r.Context(), DefaultReadinessTimeout)
			defer cancel()

			if err := dbPool.Ping(ctx); err != nil {
				logger.FromContext(ctx).Error(LogMsgReadinessFailed, "error", err)
				writeJSON(w, r, http.StatusServiceUnavailable, HealthResponse{
					Status:  StatusUnavailable,
					Message: MsgDatabaseDown,
				})
				return
			}
		}
		writeJSON(w, r, http.StatusOK, HealthResponse{Status: StatusOK})
	}
}

// HandleVersion returns the running version so deployments can be verified
func HandleVersion(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, VersionInfo{Version: version, GoVersion: runtime.Version()})
	}
}
