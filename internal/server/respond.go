package server

import (
	"encoding/json"
	"net/http"

	"github.com/getsentry/sentry-go"

	"github.com/goliatone/go-formalise/internal/log"
)

type apiError struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBody(w http.ResponseWriter, code int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

// writeError logs the failure and answers with a JSON error. Server errors
// are reported to Sentry.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, code int, msg string, err error) {
	logger := s.logger.WithCtxValues(r.Context()).WithValues(log.Kv{"status": code})
	detail := ""
	if err != nil {
		detail = err.Error()
	}

	if code >= http.StatusInternalServerError {
		logger.Errorf("%s: %s", msg, detail)
		if hub := sentry.GetHubFromContext(r.Context()); hub != nil && err != nil {
			hub.CaptureException(err)
		}
		// Internal details stay in the logs.
		detail = ""
	} else {
		logger.Debugf("%s: %s", msg, detail)
	}
	writeJSON(w, code, apiError{Error: msg, Detail: detail})
}
