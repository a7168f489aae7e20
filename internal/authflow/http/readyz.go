package http

import (
	"net/http"
	"time"

	"github.com/tuskera/authflow/internal/authflow/store"
	"github.com/tuskera/authflow/pkg/flowsdk"
	"github.com/tuskera/authflow/pkg/httpx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the database dependency. Returns 503 when the service cannot
//	@Description	serve logins.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	flowsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	flowsdk.HealthResponse	"service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &flowsdk.HealthChecks{Database: "ok"}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, flowsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
