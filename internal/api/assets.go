package api

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

// AssetHandler serves non-Markdown files (images, stylesheets) from the book
// src directory so the preview can resolve relative references.
type AssetHandler struct {
	srcRoot string
}

// NewAssetHandler creates a handler rooted at the book src directory.
func NewAssetHandler(srcRoot string) *AssetHandler {
	return &AssetHandler{srcRoot: srcRoot}
}

// safePath validates that the relative path stays inside the src root and
// returns the absolute path.
func (h *AssetHandler) safePath(rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("path is required")
	}
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid path")
	}
	return filepath.Join(h.srcRoot, cleaned), nil
}

// Serve handles GET /assets/*. Markdown sources are not served here; they go
// through the chapter endpoints.
func (h *AssetHandler) Serve(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if decoded, err := url.PathUnescape(rel); err == nil {
		rel = decoded
	}
	if strings.EqualFold(filepath.Ext(rel), ".md") {
		http.Error(w, "not an asset", http.StatusBadRequest)
		return
	}
	abs, err := h.safePath(rel)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if info, statErr := os.Stat(abs); statErr != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, abs)
}
