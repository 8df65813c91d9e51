package httptransport

import (
	"encoding/json"
	"net/http"

	dErrors "sessiongate/pkg/domain-errors"
	"sessiongate/pkg/requestcontext"
)

// Every client-facing endpoint answers HTTP 200 and signals the outcome in
// the body, so the UI can always read JSON instead of branching on status.
func writeEnvelope(w http.ResponseWriter, status string, fields map[string]any) {
	body := map[string]any{"statusMessage": status}
	for k, v := range fields {
		body[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(body)
}

// ok writes a success envelope with optional payload fields.
func (h *Handler) ok(w http.ResponseWriter, fields map[string]any) {
	writeEnvelope(w, "success", fields)
}

// invalid writes an error envelope with a message that is already user-safe.
// Used for validation failures caught before any network call.
func (h *Handler) invalid(w http.ResponseWriter, msg string) {
	writeEnvelope(w, "error", map[string]any{"error": msg})
}

// fail logs the raw error and writes the per-endpoint remapped user message.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	h.logFailure(r, endpoint, err)
	writeEnvelope(w, "error", map[string]any{"error": userMessage(endpoint, err)})
}

// failMessage logs the raw error but writes a fixed user message, for the
// endpoints that never expose remapped provider wording.
func (h *Handler) failMessage(w http.ResponseWriter, r *http.Request, endpoint string, err error, msg string) {
	h.logFailure(r, endpoint, err)
	writeEnvelope(w, "error", map[string]any{"error": msg})
}

// upstreamFail is fail plus the vendor error counter.
func (h *Handler) upstreamFail(w http.ResponseWriter, r *http.Request, endpoint, vendor string, err error) {
	h.metrics.UpstreamErrors.WithLabelValues(vendor).Inc()
	h.fail(w, r, endpoint, err)
}

func (h *Handler) logFailure(r *http.Request, endpoint string, err error) {
	h.log.ErrorContext(r.Context(), "endpoint failed",
		"endpoint", endpoint,
		"error", err,
		"code", string(dErrors.CodeOf(err)),
		"request_id", requestcontext.RequestID(r.Context()),
	)
}
