package handler

import (
	"net/http"
	"runtime"
)

// VersionInfo contains version and build information
type VersionInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
	GoVersion   string `json:"go_version"`
	BuildTime   string `json:"build_time,omitempty"`
	GitCommit   string `json:"git_commit,omitempty"`
}

// Set with -ldflags "-X github.com/osse101/FarmBot_Go/internal/handler.BuildTime=..."
var (
	BuildTime = "unknown"
	GitCommit = "unset"
)

// HandleVersion returns the deployed version
// @Summary Build information
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion(version, environment string) http.HandlerFunc {
	info := VersionInfo{
		Version:     version,
		Environment: environment,
		GoVersion:   runtime.Version(),
		BuildTime:   BuildTime,
		GitCommit:   GitCommit,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, info)
	}
}
