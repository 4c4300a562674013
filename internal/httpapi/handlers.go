package httpapi

import (
	"log/slog"
	"time"

	"jobboard-platform/internal/applications"
	"jobboard-platform/internal/audit"
	"jobboard-platform/internal/companies"
	"jobboard-platform/internal/identity"
	"jobboard-platform/internal/jobs"
	"jobboard-platform/internal/users"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.

type Handlers struct {
	Auth     *identity.Manager
	Tokens   identity.TokenStore
	ResetTTL time.Duration

	Users        *users.Service
	Companies    *companies.Service
	Jobs         *jobs.Service
	Applications *applications.Service
	Audit        *audit.Service

	Log *slog.Logger
}

func (h Handlers) logger() *slog.Logger {
	if h.Log != nil {
		return h.Log
	}
	return slog.Default()
}
