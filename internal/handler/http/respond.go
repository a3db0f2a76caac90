package http

import (
	"encoding/json"
	"net/http"

	"github.com/restgen/restgen/internal/logger"
)

// writeJSON serializes data and writes it with the given status code.
// Marshalling failures degrade to a plain 500; by then no body has been
// written yet, so the response stays consistent.
func writeJSON(w http.ResponseWriter, data any, statusCode int) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(body) //nolint:errcheck // nothing left to do for a failed response write
}

// writeError logs err and writes its error envelope with the envelope's
// declared status code. Every handler error path funnels through here, so
// no partial responses are ever emitted.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	envelope := envelopeFromError(err)
	if envelope.StatusCode >= http.StatusInternalServerError {
		log.Err(err).Msg("request failed")
	} else {
		log.Error().Err(err).Str("err_code", envelope.ErrCode).Msg("request rejected")
	}

	writeJSON(w, envelope, envelope.StatusCode)
}
