package http

import (
	"net/http"
	"time"

	"github.com/tuskera/authflow/pkg/flowsdk"
	"github.com/tuskera/authflow/pkg/httpx"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe returning basic service health, uptime, and version information.
//	@Description	Always returns 200 OK if the process is serving.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	flowsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, flowsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
