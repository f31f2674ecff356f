package server

import (
	"net/http"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"

	"github.com/kekaadrenalin/hookedit/pkg/api"
)

func (h *handler) error(w http.ResponseWriter, r *http.Request) {
	log.Debugln("unknown request")
	log.Debugf("RemoteAddr: %s", r.RemoteAddr)
	log.Debugf("URL: %s", r.URL)
	log.Debugf("Method: %s", r.Method)

	writeError(w, http.StatusNotFound, "")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("could not write response: %s", err)
	}
}

// writeError answers with {"message": ...}; an empty message falls back to the status text.
func writeError(w http.ResponseWriter, status int, message string) {
	if message == "" {
		message = http.StatusText(status)
	}

	writeJSON(w, status, api.ErrorResponse{Message: message})
}
