package handlers

import (
	"net/http"
	"path"
)

const indexFile = "index.html"

// SPAHandler serves the built frontend. Unknown paths get index.html so the
// client-side router can take over.
type SPAHandler struct {
	root http.FileSystem
}

func NewSPAHandler(dir string) *SPAHandler {
	return &SPAHandler{root: http.Dir(dir)}
}

func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		MethodNotAllowed(w, r)
		return
	}
	name := path.Clean("/" + r.URL.Path)
	if h.serveFile(w, r, name) {
		return
	}
	if h.serveFile(w, r, "/"+indexFile) {
		return
	}
	writeError(w, http.StatusNotFound, "frontend not built", "")
}

// serveFile writes a regular file and reports whether it did.
func (h *SPAHandler) serveFile(w http.ResponseWriter, r *http.Request, name string) bool {
	f, err := h.root.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}
