package server

import (
	"net/http"

	"github.com/lagsuite/ghosthq/internal/server/handlers"
	"github.com/lagsuite/ghosthq/internal/server/ratelimit"
	"github.com/lagsuite/ghosthq/internal/storage"
)

// NewRouter creates and configures the HTTP router.
// All API endpoints live under /api/*.
func NewRouter(svc *storage.Service, versions *storage.VersionService, progress *storage.ProgressStore, limiter *ratelimit.Limiter, version string) http.Handler {
	mux := &http.ServeMux{}

	hh := handlers.NewHealthHandler(version)
	ph := handlers.NewProjectHandler(svc, versions)
	wh := handlers.NewWorkspaceHandler(svc)
	prh := handlers.NewProgressHandler(progress)

	// Health check
	mux.Handle("/api/health", Wrap(hh.Health))

	// Project endpoints
	mux.Handle("GET /api/projects", Wrap(ph.ListProjects))
	mux.Handle("GET /api/projects/structure", Wrap(ph.Structure))
	mux.Handle("GET /api/projects/history", Wrap(ph.History))

	// File operation endpoints
	mux.Handle("POST /api/workspace/operations", Wrap(wh.Operations))
	mux.Handle("POST /api/workspace/move-item", Wrap(wh.MoveItem))

	// Generation progress endpoints
	mux.Handle("GET /api/ghost/progress", Wrap(prh.GetProgress))
	mux.Handle("PUT /api/ghost/progress", Wrap(prh.UpdateProgress))
	mux.Handle("DELETE /api/ghost/progress", Wrap(prh.ResetProgress))

	var h http.Handler = mux
	if limiter != nil {
		h = RateLimit(limiter)(h)
	}
	return LogRequests(Recover(h))
}
