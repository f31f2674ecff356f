package server

import (
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
)

func (h *handler) healthcheck(w http.ResponseWriter, r *http.Request) {
	log.Trace("Executing healthcheck request")

	_, _ = fmt.Fprintf(w, "OK %s", h.config.Version)
}
