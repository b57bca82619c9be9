package http

import (
	"net/http"

	"github.com/m-mizutani/contribmap/pkg/domain/types"
)

// HealthStatus is the /health response body
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	// Popups is the number of popups currently held for /popups
	Popups *int `json:"popups,omitempty"`
}

func healthHandler(feed PopupFeed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := &HealthStatus{
			Status:  "healthy",
			Service: types.ServiceName,
			Version: types.Version,
		}
		if feed != nil {
			n := len(feed.Recent())
			status.Popups = &n
		}
		writeJSON(r.Context(), w, http.StatusOK, status)
	}
}
