package handlers

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed static/*
var staticAssets embed.FS

// StaticHandler serves embedded static assets
type StaticHandler struct {
	fileServer http.Handler
}

// NewStaticHandler creates a new static assets handler
func NewStaticHandler() *StaticHandler {
	staticFS, err := fs.Sub(staticAssets, "static")
	if err != nil {
		panic("failed to get static subdirectory: " + err.Error())
	}

	return &StaticHandler{
		fileServer: http.FileServer(http.FS(staticFS)),
	}
}

// ServeHTTP serves static files. Mount it behind http.StripPrefix("/static/", ...).
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if strings.HasSuffix(r.URL.Path, ".css") {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
	}
	h.fileServer.ServeHTTP(w, r)
}
