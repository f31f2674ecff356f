package server

import (
	"fmt"
	"net/http"
)

func (h *handler) version(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-Type", "text/plain")

	if h.config.Hostname != "" {
		_, _ = fmt.Fprintf(w, "%s (%s)\n", h.config.Version, h.config.Hostname)
		return
	}

	_, _ = fmt.Fprintln(w, h.config.Version)
}
