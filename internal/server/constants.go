package server

import "time"

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Ops server starting"
	LogMsgServerStopping   = "Ops server stopping"
	LogMsgRequestCompleted = "Request completed"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgEncodeFailed     = "Failed to encode response"
)

// Health statuses
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
	MsgDatabaseDown   = "database connection failed"
)

// HTTP header names
const (
	HeaderContentType        = "Content-Type"
	HeaderContentTypeOptions = "X-Content-Type-Options"
	HeaderFrameOptions       = "X-Frame-Options"
	HeaderReferrerPolicy     = "Referrer-Policy"
)

// Header values
const (
	ContentTypeJSON       = "application/json"
	HeaderValueNoSniff    = "nosniff"
	HeaderValueDeny       = "DENY"
	HeaderValueNoReferrer = "no-referrer"
)

// Timeouts
const (
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultReadinessTimeout  = 2 * time.Second
)

// Paths that are too noisy to log on every request
var QuietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}
