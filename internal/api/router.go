package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starford/preamble/internal/bookservice"
)

// NewRouter creates a chi router with all preview API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// srcRoot is used to resolve static asset files referenced by chapters.
func NewRouter(svc *bookservice.Service, authEnabled bool, token string, sseHandler http.Handler, srcRoot string) chi.Router {
	h := NewHandler(svc)
	ah := NewAssetHandler(srcRoot)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Chapters (read-only preview).
	r.Get("/chapters", h.ListChapters)
	r.Get("/chapters/*", h.GetChapter)

	// Search.
	r.Get("/search", h.Search)

	// Frontmatter metadata.
	r.Get("/meta", h.Keys)
	r.Get("/meta/{key}", h.Lookup)

	// Static assets (images etc.) referenced from chapters.
	r.Get("/assets/*", ah.Serve)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
