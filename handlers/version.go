package handlers

import (
	"net/http"
	"os"
	"strings"
	"sync"
)

// Version can be set at build time with -ldflags "-X devroutine/handlers.Version=...".
var Version string

var (
	resolvedVersion string
	versionOnce     sync.Once
)

type VersionHandler struct{}

type VersionResponse struct {
	Version string `json:"version"`
}

func NewVersionHandler() *VersionHandler {
	return &VersionHandler{}
}

// GetBuildVersion returns the linked-in version, else the content of
// version.txt, else "dev". The result is cached after the first call.
func GetBuildVersion() string {
	versionOnce.Do(func() {
		if v := strings.TrimSpace(Version); v != "" {
			resolvedVersion = v
			return
		}
		for _, path := range []string{"version.txt", "/app/version.txt"} {
			if data, err := os.ReadFile(path); err == nil {
				if v := strings.TrimSpace(string(data)); v != "" {
					resolvedVersion = v
					return
				}
			}
		}
		resolvedVersion = "dev"
	})
	return resolvedVersion
}

func (h *VersionHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: GetBuildVersion()})
}
